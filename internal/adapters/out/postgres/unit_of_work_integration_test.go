package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction behavior of the GORM
// unit of work against a real PostgreSQL container, including the
// exactly-once guarantee for carrier assignment under contention.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesOrderVisible() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	persisted, err := uow.OrderRepository().Add(ctx, suite.createTestOrder())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, persisted.ID())
	suite.Require().NoError(err)
	suite.Equal(persisted.OrderNumber(), loaded.OrderNumber())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrder() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	persisted, err := uow.OrderRepository().Add(ctx, suite.createTestOrder())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, persisted.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsInvalidTransaction() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	_, err := uow.OrderRepository().Add(ctx, suite.createTestOrder())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentClaims_ExactlyOneWins() {
	ctx := context.Background()

	seedUow := suite.factory.Create()
	suite.Require().NoError(seedUow.Begin(ctx))
	persisted, err := seedUow.OrderRepository().Add(ctx, suite.createTestOrder())
	suite.Require().NoError(err)
	suite.Require().NoError(seedUow.Commit(ctx))

	const claimers = 8
	results := make([]error, claimers)

	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(carrierID int64, slot *error) {
			defer wg.Done()

			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				*slot = err
				return
			}
			defer func() {
				_ = uow.Rollback(ctx)
			}()

			repo := uow.OrderRepository()
			claimed, err := repo.Get(ctx, persisted.ID())
			if err != nil {
				*slot = err
				return
			}
			if err = claimed.Assign(carrierID); err != nil {
				*slot = err
				return
			}
			if err = repo.AssignCarrier(ctx, claimed); err != nil {
				*slot = err
				return
			}
			*slot = uow.Commit(ctx)
		}(int64(100+i), &results[i])
	}
	wg.Wait()

	winners := 0
	for _, res := range results {
		if res == nil {
			winners++
			continue
		}
		suite.True(errors.Is(res, errs.ErrOrderAlreadyAssigned),
			"unexpected claim error: %v", res)
	}
	suite.Equal(1, winners)

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, persisted.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsAssigned())
	suite.Equal(order.StatusAccepted, loaded.Status())
	suite.NotNil(loaded.TrackingNumber())
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	pickup := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	details := order.Details{
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

	testOrder, err := order.NewOrder(1, details, nil)
	suite.Require().NoError(err)
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
