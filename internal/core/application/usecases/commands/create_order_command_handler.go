package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order creation. Only shippers may create
// orders; the new order starts PENDING, unassigned, with a generated order
// number, and is persisted together with its items as one unit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the caller's role, builds the aggregate, and persists it.
// Returns the persisted order carrying its storage-assigned ids. All-or-
// nothing: if any item fails to persist the transaction rolls back and the
// order never becomes visible.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	caller := cmd.Caller()
	if !caller.IsShipper() {
		return nil, errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"only shippers may create orders")
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(caller.ID(), cmd.Details(), items)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	persisted, err := uow.OrderRepository().Add(ctx, newOrder)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return persisted, nil
}

func buildItems(inputs []ItemInput) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(inputs))
	var errList []error
	for _, in := range inputs {
		item, err := order.NewItem(in.ProductName, in.ProductSKU, in.Quantity, in.UnitPrice)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return items, nil
}
