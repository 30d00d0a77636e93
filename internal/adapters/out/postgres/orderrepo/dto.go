// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Order and tracking numbers carry unique indexes; status is stored as its
// canonical uppercase string and a CHECK constraint restricts the column to
// the valid set, so an invalid status is rejected at write time even for
// writes that bypass the repository.
type OrderDTO struct {
	ID                 int64   `gorm:"primaryKey;autoIncrement"`
	OrderNumber        string  `gorm:"type:varchar(16);uniqueIndex;not null"`
	TrackingNumber     *string `gorm:"type:varchar(16);uniqueIndex"`
	ShipperID          int64   `gorm:"index;not null"`
	CarrierID          *int64  `gorm:"index"`
	IsAssigned         bool    `gorm:"not null;index"`
	Status             string  `gorm:"type:varchar(16);not null;index;check:status IN ('PENDING','ACCEPTED','PICKED_UP','IN_TRANSIT','DELIVERED','CANCELLED')"`
	CustomerName       string  `gorm:"not null"`
	CustomerEmail      string  `gorm:"index;not null"`
	CustomerPhone      string  `gorm:"not null"`
	PickupLocation     string  `gorm:"not null"`
	DeliveryLocation   string  `gorm:"not null"`
	PickupDate         time.Time
	DeliveryDeadline   time.Time
	PackageDescription string `gorm:"not null"`
	Weight             float64
	Dimensions         *string
	TotalAmount        float64
	Notes              *string
	PaymentStatus      string    `gorm:"type:varchar(16);not null"`
	Items              []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line item row.
type ItemDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OrderID     int64  `gorm:"index;not null"`
	ProductName string `gorm:"not null"`
	ProductSKU  string `gorm:"not null"`
	Quantity    int
	UnitPrice   float64
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	details := aggregate.Details()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:          item.ID(),
			OrderID:     aggregate.ID(),
			ProductName: item.ProductName(),
			ProductSKU:  item.ProductSKU(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                 aggregate.ID(),
		OrderNumber:        aggregate.OrderNumber(),
		TrackingNumber:     aggregate.TrackingNumber(),
		ShipperID:          aggregate.ShipperID(),
		CarrierID:          aggregate.CarrierID(),
		IsAssigned:         aggregate.IsAssigned(),
		Status:             aggregate.Status().String(),
		CustomerName:       details.CustomerName,
		CustomerEmail:      details.CustomerEmail,
		CustomerPhone:      details.CustomerPhone,
		PickupLocation:     details.PickupLocation,
		DeliveryLocation:   details.DeliveryLocation,
		PickupDate:         details.PickupDate,
		DeliveryDeadline:   details.DeliveryDeadline,
		PackageDescription: details.PackageDescription,
		Weight:             details.Weight,
		Dimensions:         details.Dimensions,
		TotalAmount:        details.TotalAmount,
		Notes:              details.Notes,
		PaymentStatus:      aggregate.PaymentStatus(),
		Items:              items,
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

// toDomain reconstructs the order aggregate from database rows via
// RestoreOrder, which re-checks the assignment invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := order.RestoreItem(
			itemDTO.ID,
			itemDTO.ProductName,
			itemDTO.ProductSKU,
			itemDTO.Quantity,
			itemDTO.UnitPrice,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	details := order.Details{
		CustomerName:       dto.CustomerName,
		CustomerEmail:      dto.CustomerEmail,
		CustomerPhone:      dto.CustomerPhone,
		PickupLocation:     dto.PickupLocation,
		DeliveryLocation:   dto.DeliveryLocation,
		PickupDate:         dto.PickupDate,
		DeliveryDeadline:   dto.DeliveryDeadline,
		PackageDescription: dto.PackageDescription,
		Weight:             dto.Weight,
		Dimensions:         dto.Dimensions,
		TotalAmount:        dto.TotalAmount,
		Notes:              dto.Notes,
	}

	return order.RestoreOrder(
		dto.ID,
		dto.OrderNumber,
		dto.TrackingNumber,
		dto.ShipperID,
		dto.CarrierID,
		dto.IsAssigned,
		details,
		dto.PaymentStatus,
		status,
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
