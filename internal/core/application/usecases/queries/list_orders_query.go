package queries

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/paging"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersFilter narrows a caller's order list. All fields are optional.
// IsAssigned only applies to shippers; a carrier's list is assigned by
// definition.
type ListOrdersFilter struct {
	Status        *order.Status
	CustomerEmail *string
	IsAssigned    *bool
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// ListOrdersQuery lists the caller's orders: the ones a shipper created, or
// the ones assigned to a carrier. Results are paginated, newest first, with
// line items included.
//
// Example:
//
//	page, _ := paging.NewPage(1, 20)
//	status := order.StatusPending
//	query, err := NewListOrdersQuery(caller, ListOrdersFilter{Status: &status}, page)
//	if err != nil {
//	    return err
//	}
//
//	result, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("%d of %d orders\n", len(result.Items), result.Total)
type ListOrdersQuery struct {
	caller kernel.Identity
	filter ListOrdersFilter
	page   paging.Page

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a scoped order list query.
func NewListOrdersQuery(
	caller kernel.Identity, filter ListOrdersFilter, page paging.Page,
) (ListOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.CustomerEmail != nil {
		trimmed := strings.TrimSpace(*filter.CustomerEmail)
		if trimmed == "" {
			return ListOrdersQuery{}, errs.NewValueIsRequiredError("customer_email")
		}
		filter.CustomerEmail = &trimmed
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil &&
		filter.CreatedTo.Before(*filter.CreatedFrom) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("created_to")
	}

	return ListOrdersQuery{
		caller: caller,
		filter: filter,
		page:   page,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Caller returns the requesting identity.
func (q ListOrdersQuery) Caller() kernel.Identity {
	return q.caller
}

// Filter returns the optional narrowing criteria.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

// Page returns the requested page.
func (q ListOrdersQuery) Page() paging.Page {
	return q.page
}
