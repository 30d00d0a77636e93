package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// UpdateOrderStatusCommandHandler dispatches status changes to the transition
// engine and persists the result with a conditional update keyed on the status
// the engine started from. If another writer moved the order in between, the
// caller receives ErrConcurrentModification and must retry with fresh state;
// the handler never retries on its own.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.TransitionEngine
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// Handle loads the order, applies the authorization-gated transition, and
// persists the new status. Returns the updated snapshot.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	target, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	observed := target.Status()
	if err = h.engine.Apply(target, cmd.Caller(), cmd.Requested()); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, target, observed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
