package queries

import (
	"context"
	"database/sql"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OrderItemResponse is one line item of an order read model.
type OrderItemResponse struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	ProductSKU  string  `json:"product_sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderResponse is the full order read model returned by every order query.
// Status is the canonical uppercase string form. TrackingNumber and CarrierID
// are nil until a carrier claims the order.
type OrderResponse struct {
	ID                 int64               `json:"id"`
	OrderNumber        string              `json:"order_number"`
	TrackingNumber     *string             `json:"tracking_number"`
	ShipperID          int64               `json:"shipper_id"`
	CarrierID          *int64              `json:"carrier_id"`
	IsAssigned         bool                `json:"is_assigned"`
	Status             string              `json:"status"`
	CustomerName       string              `json:"customer_name"`
	CustomerEmail      string              `json:"customer_email"`
	CustomerPhone      string              `json:"customer_phone"`
	PickupLocation     string              `json:"pickup_location"`
	DeliveryLocation   string              `json:"delivery_location"`
	PickupDate         time.Time           `json:"pickup_date"`
	DeliveryDeadline   time.Time           `json:"delivery_deadline"`
	PackageDescription string              `json:"package_description"`
	Weight             float64             `json:"weight"`
	Dimensions         *string             `json:"dimensions"`
	TotalAmount        float64             `json:"total_amount"`
	Notes              *string             `json:"notes"`
	PaymentStatus      string              `json:"payment_status"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// orderColumns is the select list every order query scans. Keep in sync with
// scanOrder.
const orderColumns = `
	id,
	order_number,
	tracking_number,
	shipper_id,
	carrier_id,
	is_assigned,
	status,
	customer_name,
	customer_email,
	customer_phone,
	pickup_location,
	delivery_location,
	pickup_date,
	delivery_deadline,
	package_description,
	weight,
	dimensions,
	total_amount,
	notes,
	payment_status,
	created_at,
	updated_at
`

func scanOrder(rows *sql.Rows) (OrderResponse, error) {
	var resp OrderResponse
	err := rows.Scan(
		&resp.ID,
		&resp.OrderNumber,
		&resp.TrackingNumber,
		&resp.ShipperID,
		&resp.CarrierID,
		&resp.IsAssigned,
		&resp.Status,
		&resp.CustomerName,
		&resp.CustomerEmail,
		&resp.CustomerPhone,
		&resp.PickupLocation,
		&resp.DeliveryLocation,
		&resp.PickupDate,
		&resp.DeliveryDeadline,
		&resp.PackageDescription,
		&resp.Weight,
		&resp.Dimensions,
		&resp.TotalAmount,
		&resp.Notes,
		&resp.PaymentStatus,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Items = make([]OrderItemResponse, 0)
	return resp, nil
}

// attachItems loads the line items for every order in responses with a single
// query and distributes them by order id.
func attachItems(ctx context.Context, db *gorm.DB, responses []OrderResponse) error {
	if len(responses) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(responses))
	byID := make(map[int64]*OrderResponse, len(responses))
	for i := range responses {
		ids = append(ids, responses[i].ID)
		byID[responses[i].ID] = &responses[i]
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			product_name,
			product_sku,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ANY(?)
		ORDER BY order_id, id
	`, pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var orderID int64

		err = rows.Scan(
			&item.ID,
			&orderID,
			&item.ProductName,
			&item.ProductSKU,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return err
		}

		if resp, ok := byID[orderID]; ok {
			resp.Items = append(resp.Items, item)
		}
	}

	return rows.Err()
}

// authorizeRead enforces read visibility: shippers see orders they created,
// carriers see orders assigned to them.
func authorizeRead(resp OrderResponse, caller kernel.Identity) error {
	switch {
	case caller.IsShipper():
		if resp.ShipperID != caller.ID() {
			return errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
				"order belongs to another shipper")
		}
	case caller.IsCarrier():
		if resp.CarrierID == nil || *resp.CarrierID != caller.ID() {
			return errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
				"order is not assigned to this carrier")
		}
	default:
		return errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"unknown role")
	}
	return nil
}
