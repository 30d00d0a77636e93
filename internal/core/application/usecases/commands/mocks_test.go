package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context, o *order.Order, expectedCurrent order.Status,
) error {
	args := m.Called(ctx, o, expectedCurrent)
	return args.Error(0)
}

func (m *MockOrderRepository) AssignCarrier(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// Shared fixtures.

func shipperIdentity(t *testing.T, id int64) kernel.Identity {
	t.Helper()
	ident, err := kernel.NewIdentity(id, kernel.RoleShipper)
	require.NoError(t, err)
	return ident
}

func carrierIdentity(t *testing.T, id int64) kernel.Identity {
	t.Helper()
	ident, err := kernel.NewIdentity(id, kernel.RoleCarrier)
	require.NoError(t, err)
	return ident
}

func validDetails() order.Details {
	pickup := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	return order.Details{
		CustomerName:       "Ada Wong",
		CustomerEmail:      "ada@example.com",
		CustomerPhone:      "+1-555-0101",
		PickupLocation:     "12 Dock Rd, Oakland, CA",
		DeliveryLocation:   "400 Pine St, Seattle, WA",
		PickupDate:         pickup,
		DeliveryDeadline:   pickup.Add(72 * time.Hour),
		PackageDescription: "Machine parts",
		Weight:             10,
		TotalAmount:        50,
	}
}
