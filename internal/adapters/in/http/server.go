// Package http exposes the order API over HTTP using echo. The server
// coordinates between HTTP handlers and application use cases; identity comes
// from gateway headers via IdentityMiddleware.
package http

import (
	"net/http"
	"strconv"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/paging"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the order API.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	acceptOrderHandler       commands.AcceptOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	getOrderHandler           queries.GetOrderQueryHandler
	getByTrackingHandler      queries.GetOrderByTrackingNumberQueryHandler
	listOrdersHandler         queries.ListOrdersQueryHandler
	listAvailableOrderHandler queries.ListAvailableOrdersQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getByTrackingHandler queries.GetOrderByTrackingNumberQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listAvailableOrderHandler queries.ListAvailableOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		acceptOrderHandler:        acceptOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		getOrderHandler:           getOrderHandler,
		getByTrackingHandler:      getByTrackingHandler,
		listOrdersHandler:         listOrdersHandler,
		listAvailableOrderHandler: listAvailableOrderHandler,
	}
}

// RegisterRoutes mounts the API on the given echo instance. Everything under
// /api/v1/orders requires a resolved identity; /health does not.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	ordersGroup := e.Group("/api/v1/orders", IdentityMiddleware)
	ordersGroup.POST("", s.CreateOrder)
	ordersGroup.GET("", s.ListOrders)
	ordersGroup.GET("/available", s.ListAvailableOrders)
	ordersGroup.GET("/tracking/:trackingNumber", s.GetOrderByTrackingNumber)
	ordersGroup.GET("/:id", s.GetOrder)
	ordersGroup.POST("/:id/accept", s.AcceptOrder)
	ordersGroup.PATCH("/:id/status", s.UpdateOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type itemRequest struct {
	ProductName string  `json:"product_name"`
	ProductSKU  string  `json:"product_sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type createOrderRequest struct {
	CustomerName       string        `json:"customer_name"`
	CustomerEmail      string        `json:"customer_email"`
	CustomerPhone      string        `json:"customer_phone"`
	PickupLocation     string        `json:"pickup_location"`
	DeliveryLocation   string        `json:"delivery_location"`
	PickupDate         time.Time     `json:"pickup_date"`
	DeliveryDeadline   time.Time     `json:"delivery_deadline"`
	PackageDescription string        `json:"package_description"`
	Weight             float64       `json:"weight"`
	Dimensions         *string       `json:"dimensions"`
	TotalAmount        float64       `json:"total_amount"`
	Notes              *string       `json:"notes"`
	Items              []itemRequest `json:"items"`
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return badRequest(ctx, "missing identity")
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	details := order.Details{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		PickupLocation:     req.PickupLocation,
		DeliveryLocation:   req.DeliveryLocation,
		PickupDate:         req.PickupDate,
		DeliveryDeadline:   req.DeliveryDeadline,
		PackageDescription: req.PackageDescription,
		Weight:             req.Weight,
		Dimensions:         req.Dimensions,
		TotalAmount:        req.TotalAmount,
		Notes:              req.Notes,
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(caller, details, items)
	if err != nil {
		return WriteError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return badRequest(ctx, "missing identity")
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id, caller)
	if err != nil {
		return WriteError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetOrderByTrackingNumber handles GET /orders/tracking/:trackingNumber.
func (s *Server) GetOrderByTrackingNumber(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return badRequest(ctx, "missing identity")
	}

	query, err := queries.NewGetOrderByTrackingNumberQuery(ctx.Param("trackingNumber"), caller)
	if err != nil {
		return WriteError(ctx, err)
	}

	resp, err := s.getByTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return badRequest(ctx, "missing identity")
	}

	page, err := pageFrom(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	filter, err := filterFrom(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(caller, filter, page)
	if err != nil {
		return WriteError(ctx, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// ListAvailableOrders handles GET /orders/available.
func (s *Server) ListAvailableOrders(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return badRequest(ctx, "missing identity")
	}

	page, err := pageFrom(ctx)
	if err != nil {
		return WriteError(ctx, err)
	}

	query, err := queries.NewListAvailableOrdersQuery(caller, page)
	if err != nil {
		return WriteError(ctx, err)
	}

	result, err := s.listAvailableOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// AcceptOrder handles POST /orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return badRequest(ctx, "missing identity")
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewAcceptOrderCommand(id, caller)
	if err != nil {
		return WriteError(ctx, err)
	}

	claimed, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(claimed))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return badRequest(ctx, "missing identity")
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	requested, err := order.ParseStatus(req.Status)
	if err != nil {
		return WriteError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, caller, requested)
	if err != nil {
		return WriteError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

func pageFrom(ctx echo.Context) (paging.Page, error) {
	number, err := intQueryParam(ctx, "page")
	if err != nil {
		return paging.Page{}, err
	}
	size, err := intQueryParam(ctx, "page_size")
	if err != nil {
		return paging.Page{}, err
	}
	return paging.NewPage(number, size)
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func filterFrom(ctx echo.Context) (queries.ListOrdersFilter, error) {
	var filter queries.ListOrdersFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("customer_email"); raw != "" {
		filter.CustomerEmail = &raw
	}

	if raw := ctx.QueryParam("is_assigned"); raw != "" {
		assigned, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errs.NewValueIsInvalidErrorWithCause("is_assigned", err)
		}
		filter.IsAssigned = &assigned
	}

	if raw := ctx.QueryParam("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errs.NewValueIsInvalidErrorWithCause("date_from", err)
		}
		filter.CreatedFrom = &from
	}

	if raw := ctx.QueryParam("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errs.NewValueIsInvalidErrorWithCause("date_to", err)
		}
		filter.CreatedTo = &to
	}

	return filter, nil
}
