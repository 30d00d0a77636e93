package services

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// TransitionEngine is the domain service that decides whether a requested
// status change is permitted for a given (caller, order) pair and applies it
// to the aggregate.
//
// Authorization rules:
//   - shipper: must own the order (caller id equals shipper id); the only
//     permitted target is CANCELLED, and only while the order is not
//     DELIVERED or already CANCELLED
//   - carrier: must be the assigned carrier (an unassigned order has no
//     carrier to authorize); may never cancel; may only advance along
//     ACCEPTED -> PICKED_UP -> IN_TRANSIT -> DELIVERED, one stage at a time
//   - any other caller is rejected
//
// PENDING -> ACCEPTED is deliberately absent: that transition belongs to the
// carrier-assignment flow, which also issues the tracking number.
//
// The engine mutates only the in-memory aggregate; on failure the aggregate is
// untouched. Persistence, including the conditional update that makes the
// change safe under concurrency, is the caller's responsibility.
type TransitionEngine struct{}

// NewTransitionEngine creates a TransitionEngine.
func NewTransitionEngine() TransitionEngine {
	return TransitionEngine{}
}

// Apply validates authorization and transition adjacency, then moves the order
// to the requested status.
func (e TransitionEngine) Apply(o *order.Order, caller kernel.Identity, requested order.Status) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := requested.Validate(); err != nil {
		return err
	}

	switch caller.Role() {
	case kernel.RoleShipper:
		return e.applyShipper(o, caller, requested)
	case kernel.RoleCarrier:
		return e.applyCarrier(o, caller, requested)
	default:
		return errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"role may not update order status")
	}
}

func (e TransitionEngine) applyShipper(o *order.Order, caller kernel.Identity, requested order.Status) error {
	if caller.ID() != o.ShipperID() {
		return errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"does not own the order")
	}

	if requested != order.StatusCancelled {
		return errs.NewInvalidTransitionError(o.Status().String(), requested.String(),
			"shippers may only cancel orders")
	}

	return o.Cancel()
}

func (e TransitionEngine) applyCarrier(o *order.Order, caller kernel.Identity, requested order.Status) error {
	carrierID := o.CarrierID()
	if carrierID == nil || *carrierID != caller.ID() {
		return errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"is not the assigned carrier")
	}

	if requested == order.StatusCancelled {
		return errs.NewInvalidTransitionError(o.Status().String(), requested.String(),
			"carriers may not cancel orders")
	}

	return o.AdvanceTo(requested)
}
