package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// AcceptOrderCommandHandler lets an unassigned order be claimed by exactly one
// carrier. Claiming sets the carrier id, flips the assignment flag, moves the
// order to ACCEPTED, and issues the tracking number; no other path populates
// any of those fields.
//
// Two carriers racing for the same order are resolved at the storage layer:
// the repository's AssignCarrier only applies while the row is still
// unassigned, so the loser gets ErrOrderAlreadyAssigned, never a silent
// overwrite of the winner.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for carrier acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle claims the order for the calling carrier and returns the updated
// snapshot. Non-carrier callers are rejected before any storage access.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	caller := cmd.Caller()
	if !caller.IsCarrier() {
		return nil, errs.NewAuthorizationDeniedError(caller.ID(), caller.Role().String(),
			"only carriers may accept orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	claimed, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = claimed.Assign(caller.ID()); err != nil {
		return nil, err
	}

	if err = repo.AssignCarrier(ctx, claimed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
