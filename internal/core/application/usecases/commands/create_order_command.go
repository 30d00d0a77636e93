package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput carries the line-item fields of a creation request.
// Validation happens when the items are turned into domain entities.
type ItemInput struct {
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   float64
}

// CreateOrderCommand represents a shipper's request to create a new order
// together with its line items.
type CreateOrderCommand struct {
	caller  kernel.Identity
	details order.Details
	items   []ItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command for order creation. The caller's
// identity must be valid; the order fields themselves are validated by the
// domain when the aggregate is constructed, so a malformed request fails
// before anything is persisted.
func NewCreateOrderCommand(caller kernel.Identity, details order.Details, items []ItemInput) (CreateOrderCommand, error) {
	if err := caller.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		caller:  caller,
		details: details,
		items:   items,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Caller returns the requesting identity.
func (c CreateOrderCommand) Caller() kernel.Identity {
	return c.caller
}

// Details returns the order's shipment, customer, and commercial fields.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

// Items returns the requested line items.
func (c CreateOrderCommand) Items() []ItemInput {
	return c.items
}
