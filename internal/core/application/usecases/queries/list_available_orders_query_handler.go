package queries

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/paging"

	"gorm.io/gorm"
)

// ListAvailableOrdersQueryHandler serves the open-order board carriers pick
// work from. Only unassigned pending orders qualify; cancelled orders never
// reappear here.
type ListAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListAvailableOrdersQueryHandler creates a handler for the open-order
// board.
func NewListAvailableOrdersQueryHandler(db *gorm.DB) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{db: db}
}

// Handle returns one page of claimable orders, oldest first so long-waiting
// orders surface ahead of fresh ones.
func (h ListAvailableOrdersQueryHandler) Handle(
	ctx context.Context, query ListAvailableOrdersQuery,
) (paging.Result[OrderResponse], error) {
	var empty paging.Result[OrderResponse]

	if err := query.Validate(); err != nil {
		return empty, err
	}

	caller := query.Caller()
	if !caller.IsCarrier() {
		return empty, errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"only carriers may browse available orders")
	}

	var total int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders WHERE is_assigned = FALSE AND status = ?`,
			order.StatusPending.String()).
		Scan(&total).Error
	if err != nil {
		return empty, err
	}

	page := query.Page()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE is_assigned = FALSE AND status = ?
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`, order.StatusPending.String(), page.Size, page.Offset()).Rows()
	if err != nil {
		return empty, err
	}
	defer rows.Close()

	responses := make([]OrderResponse, 0, page.Size)
	for rows.Next() {
		resp, scanErr := scanOrder(rows)
		if scanErr != nil {
			return empty, scanErr
		}
		responses = append(responses, resp)
	}
	if err = rows.Err(); err != nil {
		return empty, err
	}

	if err = attachItems(ctx, h.db, responses); err != nil {
		return empty, err
	}

	return paging.NewResult(responses, int(total), page), nil
}
