package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// lifecycle status. The target status is already a parsed domain value: the
// boundary folds and validates the raw string before this command exists.
type UpdateOrderStatusCommand struct {
	orderID   int64
	caller    kernel.Identity
	requested order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command for a status transition.
func NewUpdateOrderStatusCommand(
	orderID int64, caller kernel.Identity, requested order.Status,
) (UpdateOrderStatusCommand, error) {
	if orderID <= 0 {
		return UpdateOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if err := caller.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if err := requested.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID:   orderID,
		caller:    caller,
		requested: requested,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the id of the order to transition.
func (c UpdateOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

// Caller returns the requesting identity.
func (c UpdateOrderStatusCommand) Caller() kernel.Identity {
	return c.caller
}

// Requested returns the target status.
func (c UpdateOrderStatusCommand) Requested() order.Status {
	return c.requested
}
