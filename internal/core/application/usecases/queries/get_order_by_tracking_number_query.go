package queries

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetOrderByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetOrderByTrackingNumberQuery must be created via NewGetOrderByTrackingNumberQuery constructor",
)

// GetOrderByTrackingNumberQuery retrieves an order by its tracking number on
// behalf of a caller. Same visibility rules as lookup by id.
type GetOrderByTrackingNumberQuery struct {
	trackingNumber string
	caller         kernel.Identity

	guard guard.ConstructorGuard
}

// NewGetOrderByTrackingNumberQuery creates a tracking-number lookup query.
func NewGetOrderByTrackingNumberQuery(
	trackingNumber string, caller kernel.Identity,
) (GetOrderByTrackingNumberQuery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return GetOrderByTrackingNumberQuery{}, errs.NewValueIsRequiredError("tracking_number")
	}
	if err := caller.Validate(); err != nil {
		return GetOrderByTrackingNumberQuery{}, err
	}

	return GetOrderByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		caller:         caller,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByTrackingNumberQueryIsNotConstructed)
}

// TrackingNumber returns the requested tracking number.
func (q GetOrderByTrackingNumberQuery) TrackingNumber() string {
	return q.trackingNumber
}

// Caller returns the requesting identity.
func (q GetOrderByTrackingNumberQuery) Caller() kernel.Identity {
	return q.caller
}
