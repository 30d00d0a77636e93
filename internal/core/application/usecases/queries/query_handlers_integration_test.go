package queries_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/paging"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersIntegrationTestSuite exercises the read side against a real
// PostgreSQL container, seeding through the order repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)
	suite.repo = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_OwnerSeesItems() {
	ctx := context.Background()
	persisted := suite.seedOrder(1, "ada@example.com", 2)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(persisted.ID(), shipperIdentity(suite.T(), 1))
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(persisted.OrderNumber(), resp.OrderNumber)
	suite.Equal("PENDING", resp.Status)
	suite.Len(resp.Items, 2)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ForeignShipperDenied() {
	ctx := context.Background()
	persisted := suite.seedOrder(1, "ada@example.com", 0)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(persisted.ID(), shipperIdentity(suite.T(), 2))
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrAuthorizationDenied)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_UnassignedCarrierDenied() {
	ctx := context.Background()
	persisted := suite.seedOrder(1, "ada@example.com", 0)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(persisted.ID(), carrierIdentity(suite.T(), 7))
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrAuthorizationDenied)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(999999, shipperIdentity(suite.T(), 1))
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByTrackingNumber_AssignedCarrier() {
	ctx := context.Background()
	persisted := suite.seedOrder(1, "ada@example.com", 1)
	suite.claim(persisted.ID(), 7)

	claimed, err := suite.repo.Get(ctx, persisted.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(claimed.TrackingNumber())

	handler := queries.NewGetOrderByTrackingNumberQueryHandler(suite.db)
	query, err := queries.NewGetOrderByTrackingNumberQuery(
		*claimed.TrackingNumber(), carrierIdentity(suite.T(), 7))
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(persisted.ID(), resp.ID)
	suite.Equal("ACCEPTED", resp.Status)
	suite.Len(resp.Items, 1)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByTrackingNumber_NotFound() {
	handler := queries.NewGetOrderByTrackingNumberQueryHandler(suite.db)
	query, err := queries.NewGetOrderByTrackingNumberQuery("TRK-FFFFFFFFFF", carrierIdentity(suite.T(), 7))
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_ShipperScopeNewestFirst() {
	ctx := context.Background()
	first := suite.seedOrder(1, "ada@example.com", 0)
	second := suite.seedOrder(1, "bob@example.com", 0)
	suite.seedOrder(2, "eve@example.com", 0)

	handler := queries.NewListOrdersQueryHandler(suite.db)
	query, err := queries.NewListOrdersQuery(
		shipperIdentity(suite.T(), 1), queries.ListOrdersFilter{}, defaultPage(suite.T()))
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(2, result.Total)
	suite.Require().Len(result.Items, 2)
	suite.Equal(second.ID(), result.Items[0].ID)
	suite.Equal(first.ID(), result.Items[1].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_Filters() {
	ctx := context.Background()
	suite.seedOrder(1, "ada@example.com", 0)
	claimed := suite.seedOrder(1, "bob@example.com", 0)
	suite.claim(claimed.ID(), 7)

	handler := queries.NewListOrdersQueryHandler(suite.db)

	status := order.StatusAccepted
	query, err := queries.NewListOrdersQuery(shipperIdentity(suite.T(), 1),
		queries.ListOrdersFilter{Status: &status}, defaultPage(suite.T()))
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(1, result.Total)
	suite.Equal(claimed.ID(), result.Items[0].ID)

	assigned := false
	query, err = queries.NewListOrdersQuery(shipperIdentity(suite.T(), 1),
		queries.ListOrdersFilter{IsAssigned: &assigned}, defaultPage(suite.T()))
	suite.Require().NoError(err)

	result, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(1, result.Total)
	suite.Equal("ada@example.com", result.Items[0].CustomerEmail)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_CarrierSeesAssignedOnly() {
	ctx := context.Background()
	suite.seedOrder(1, "ada@example.com", 0)
	claimed := suite.seedOrder(1, "bob@example.com", 0)
	suite.claim(claimed.ID(), 7)

	handler := queries.NewListOrdersQueryHandler(suite.db)
	query, err := queries.NewListOrdersQuery(
		carrierIdentity(suite.T(), 7), queries.ListOrdersFilter{}, defaultPage(suite.T()))
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(1, result.Total)
	suite.Equal(claimed.ID(), result.Items[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListAvailableOrders() {
	ctx := context.Background()
	open := suite.seedOrder(1, "ada@example.com", 0)
	claimed := suite.seedOrder(1, "bob@example.com", 0)
	suite.claim(claimed.ID(), 7)

	handler := queries.NewListAvailableOrdersQueryHandler(suite.db)
	query, err := queries.NewListAvailableOrdersQuery(
		carrierIdentity(suite.T(), 9), defaultPage(suite.T()))
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(1, result.Total)
	suite.Equal(open.ID(), result.Items[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListAvailableOrders_ShipperDenied() {
	handler := queries.NewListAvailableOrdersQueryHandler(suite.db)
	query, err := queries.NewListAvailableOrdersQuery(
		shipperIdentity(suite.T(), 1), defaultPage(suite.T()))
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrAuthorizationDenied)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListAvailableOrders_Pagination() {
	ctx := context.Background()
	suite.seedOrder(1, "a@example.com", 0)
	suite.seedOrder(1, "b@example.com", 0)
	suite.seedOrder(1, "c@example.com", 0)

	page, err := paging.NewPage(2, 1)
	suite.Require().NoError(err)

	handler := queries.NewListAvailableOrdersQueryHandler(suite.db)
	query, err := queries.NewListAvailableOrdersQuery(carrierIdentity(suite.T(), 7), page)
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(3, result.Total)
	suite.Equal(3, result.Pages)
	suite.Equal(2, result.Page)
	suite.Len(result.Items, 1)
}

// seedOrder persists a pending order for the given shipper. createdAt ordering
// between seeded orders follows insertion order via the id tiebreak.
func (suite *QueryHandlersIntegrationTestSuite) seedOrder(
	shipperID int64, email string, itemCount int,
) *order.Order {
	pickup := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	details := order.Details{
		CustomerName:       "Ada Wong",
		CustomerEmail:      email,
		CustomerPhone:      "+1-555-0101",
		PickupLocation:     "12 Dock Rd, Oakland, CA",
		DeliveryLocation:   "400 Pine St, Seattle, WA",
		PickupDate:         pickup,
		DeliveryDeadline:   pickup.Add(72 * time.Hour),
		PackageDescription: "Machine parts",
		Weight:             10,
		TotalAmount:        50,
	}

	items := make([]*order.Item, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		item, err := order.NewItem("Widget", "SKU-1", 1+i, 25)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(shipperID, details, items)
	suite.Require().NoError(err)

	persisted, err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	return persisted
}

func (suite *QueryHandlersIntegrationTestSuite) claim(orderID, carrierID int64) {
	ctx := context.Background()
	aggregate, err := suite.repo.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Assign(carrierID))
	suite.Require().NoError(suite.repo.AssignCarrier(ctx, aggregate))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
