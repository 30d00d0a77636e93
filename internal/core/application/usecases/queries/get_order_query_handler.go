package queries

import (
	"context"

	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order with its items from the database
// and enforces read visibility before returning it.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or ObjectNotFound when no row matches. A caller
// that can see the order exists but does not own it gets AuthorizationDenied.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}

	resp, err := scanOrder(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	if err = authorizeRead(resp, query.Caller()); err != nil {
		return OrderResponse{}, err
	}

	responses := []OrderResponse{resp}
	if err = attachItems(ctx, h.db, responses); err != nil {
		return OrderResponse{}, err
	}

	return responses[0], nil
}
