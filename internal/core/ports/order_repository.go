package ports

import (
	"context"

	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Conditional writes are the concurrency primitive of the whole system:
// assignment and status updates must only succeed when the row still matches
// the state the caller observed.
type OrderRepository interface {
	// Add persists a new order together with its line items as one unit.
	// If item persistence fails nothing of the order remains visible.
	// Returns the persisted snapshot carrying the storage-assigned ids.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get retrieves an order with its items by identifier.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetByTrackingNumber retrieves an order with its items by tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error)

	// GetByOrderNumber retrieves an order with its items by order number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// UpdateStatus persists the aggregate's status conditionally: the write
	// only applies while the stored status still equals expectedCurrent.
	// A failed precondition returns ErrConcurrentModification.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expectedCurrent order.Status) error

	// AssignCarrier persists a fresh assignment conditionally: the write only
	// applies while the stored row is still unassigned and pending. A failed
	// precondition returns ErrOrderAlreadyAssigned, so of two racing carriers
	// exactly one wins.
	AssignCarrier(ctx context.Context, aggregate *order.Order) error
}
