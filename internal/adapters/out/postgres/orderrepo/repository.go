package orderrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// The two write paths that race under concurrency, AssignCarrier and
// UpdateStatus, are conditional updates: the WHERE clause restates the
// precondition the caller observed, and zero affected rows means another
// writer got there first.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its line items and returns the
// persisted aggregate carrying the storage-assigned ids.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errs.NewValueIsInvalidErrorWithCause("order_number", err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Get retrieves an order with its items by id.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.getBy(ctx, "id = ?", id, "order_id", id)
}

// GetByTrackingNumber retrieves an order with its items by tracking number.
func (r *GormOrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	return r.getBy(ctx, "tracking_number = ?", trackingNumber, "tracking_number", trackingNumber)
}

// GetByOrderNumber retrieves an order with its items by order number.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	return r.getBy(ctx, "order_number = ?", orderNumber, "order_number", orderNumber)
}

func (r *GormOrderRepository) getBy(
	ctx context.Context, condition string, value any, paramName string, paramValue any,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&dto, condition, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(paramName, paramValue)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus persists a status transition, guarded by the status the caller
// observed. Zero affected rows means a concurrent writer moved the order
// first; the stale caller gets ErrConcurrentModification and must reload.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context, aggregate *order.Order, expectedCurrent order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID(), expectedCurrent.String()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order_id", aggregate.ID())
	}

	return nil
}

// AssignCarrier persists a carrier claim. The update only applies while the
// row is still unassigned and pending, so of two racing carriers exactly one
// wins; the loser gets ErrOrderAlreadyAssigned.
func (r *GormOrderRepository) AssignCarrier(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND is_assigned = FALSE AND status = ?",
			aggregate.ID(), order.StatusPending.String()).
		Updates(map[string]any{
			"carrier_id":      aggregate.CarrierID(),
			"is_assigned":     true,
			"status":          aggregate.Status().String(),
			"tracking_number": aggregate.TrackingNumber(),
			"updated_at":      aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return errs.NewValueIsInvalidErrorWithCause("tracking_number", result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewOrderAlreadyAssignedError(aggregate.ID())
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
