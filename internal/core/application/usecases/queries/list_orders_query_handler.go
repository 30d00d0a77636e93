package queries

import (
	"context"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/paging"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders scoped to the caller. Shippers see the
// orders they created, carriers the orders assigned to them. The scope column
// is decided here; filters only ever narrow within it.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for scoped order lists.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns one page of the caller's orders, newest first, items loaded.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context, query ListOrdersQuery,
) (paging.Result[OrderResponse], error) {
	var empty paging.Result[OrderResponse]

	if err := query.Validate(); err != nil {
		return empty, err
	}

	caller := query.Caller()
	conditions := make([]string, 0, 6)
	args := make([]any, 0, 6)

	switch {
	case caller.IsShipper():
		conditions = append(conditions, "shipper_id = ?")
		args = append(args, caller.ID())
	case caller.IsCarrier():
		conditions = append(conditions, "carrier_id = ?")
		args = append(args, caller.ID())
	default:
		return empty, errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"unknown role")
	}

	filter := query.Filter()
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.CustomerEmail != nil {
		conditions = append(conditions, "customer_email = ?")
		args = append(args, *filter.CustomerEmail)
	}
	if filter.IsAssigned != nil && caller.IsShipper() {
		conditions = append(conditions, "is_assigned = ?")
		args = append(args, *filter.IsAssigned)
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *filter.CreatedTo)
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders WHERE "+where, args...).
		Scan(&total).Error
	if err != nil {
		return empty, err
	}

	page := query.Page()
	pageSQL := fmt.Sprintf(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, where)

	rows, err := h.db.WithContext(ctx).
		Raw(pageSQL, append(args, page.Size, page.Offset())...).
		Rows()
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
