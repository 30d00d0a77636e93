package queries

import (
	"context"

	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderByTrackingNumberQueryHandler resolves a tracking number to its
// order. Tracking numbers only exist on assigned orders, so a hit always has
// a carrier to authorize against.
type GetOrderByTrackingNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByTrackingNumberQueryHandler creates a handler for
// tracking-number lookups.
func NewGetOrderByTrackingNumberQueryHandler(db *gorm.DB) GetOrderByTrackingNumberQueryHandler {
	return GetOrderByTrackingNumberQueryHandler{db: db}
}

// Handle returns the order carrying the tracking number, or ObjectNotFound.
func (h GetOrderByTrackingNumberQueryHandler) Handle(
	ctx context.Context, query GetOrderByTrackingNumberQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE tracking_number = ?
	`, query.TrackingNumber()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("tracking_number", query.TrackingNumber())
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
