package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/paging"
)

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// ListAvailableOrdersQuery lists open orders a carrier can claim: pending and
// not yet assigned. Carrier-only.
type ListAvailableOrdersQuery struct {
	caller kernel.Identity
	page   paging.Page

	guard guard.ConstructorGuard
}

// NewListAvailableOrdersQuery creates a query for the open-order board.
func NewListAvailableOrdersQuery(caller kernel.Identity, page paging.Page) (ListAvailableOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListAvailableOrdersQuery{}, err
	}

	return ListAvailableOrdersQuery{
		caller: caller,
		page:   page,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

// Caller returns the requesting identity.
func (q ListAvailableOrdersQuery) Caller() kernel.Identity {
	return q.caller
}

// Page returns the requested page.
func (q ListAvailableOrdersQuery) Page() paging.Page {
	return q.page
}
