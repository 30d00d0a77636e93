package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a carrier's request to claim an unassigned
// order. No payload beyond the caller identity and the order id.
type AcceptOrderCommand struct {
	orderID int64
	caller  kernel.Identity

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to claim an order.
func NewAcceptOrderCommand(orderID int64, caller kernel.Identity) (AcceptOrderCommand, error) {
	if orderID <= 0 {
		return AcceptOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if err := caller.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID: orderID,
		caller:  caller,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to claim.
func (c AcceptOrderCommand) OrderID() int64 {
	return c.orderID
}

// Caller returns the requesting identity.
func (c AcceptOrderCommand) Caller() kernel.Identity {
	return c.caller
}
