package handlers

import (
	"errors"
	"net/http"

	"dataware/internal/common"
	"dataware/internal/models"
	"dataware/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// IdempotencyKeyHeader lets a client retry POST /api/orders without creating a second order.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
	outcomes     *prometheus.CounterVec
}

type OrderHandlerOption func(*OrderHandlers)

// WithOrderOutcomes counts every POST /api/orders by outcome on a counter with a single
// "outcome" label.
func WithOrderOutcomes(counter *prometheus.CounterVec) OrderHandlerOption {
	return func(h *OrderHandlers) {
		h.outcomes = counter
	}
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService, opts ...OrderHandlerOption) *OrderHandlers {
	h := &OrderHandlers{
		orderService: orderService,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the order endpoints on g.
func (h *OrderHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListOrders)
	g.POST("", h.CreateOrder)
	g.GET("/search", h.SearchOrders)
	g.GET("/:id", h.GetOrder)
	g.PUT("/:id", h.UpdateOrder)
	g.DELETE("/:id", h.DeleteOrder)
}

// CreateOrder handles POST /api/orders
//
//	@Summary	Create an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		Idempotency-Key	header		string				false	"Replay key"
//	@Param		order			body		models.OrderRequest	true	"Order"
//	@Success	201				{object}	models.Order
//	@Success	200				{object}	models.Order	"replayed"
//	@Failure	400				{object}	common.ErrorResponse
//	@Failure	404				{object}	common.ErrorResponse
//	@Failure	409				{object}	common.ErrorResponse	"same Idempotency-Key in flight"
//	@Failure	502				{object}	common.ErrorResponse
//	@Failure	503				{object}	common.ErrorResponse
//	@Router		/api/orders [post]
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req models.OrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, replayed, err := h.orderService.CreateOrderIdempotent(c.Request().Context(), c.Request().Header.Get(IdempotencyKeyHeader), &req)
	h.recordOutcome(orderOutcome(replayed, err))
	if err != nil {
		return sendServiceError(c, err)
	}
	if replayed {
		return c.JSON(http.StatusOK, order)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandlers) recordOutcome(outcome string) {
	if h.outcomes != nil {
		h.outcomes.WithLabelValues(outcome).Inc()
	}
}

func orderOutcome(replayed bool, err error) string {
	switch {
	case err == nil && replayed:
		return "replayed"
	case err == nil:
		return "created"
	case errors.Is(err, services.ErrValidation):
		return "invalid"
	case errors.Is(err, services.ErrNotFound):
		return "product_not_found"
	case errors.Is(err, services.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, services.ErrUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, services.ErrConflict):
		return "conflict"
	default:
		return "storage_error"
	}
}

// ListOrders handles GET /api/orders
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}	models.Order
//	@Router		/api/orders [get]
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// SearchOrders handles GET /api/orders/search?productId=
//
//	@Summary	Find orders containing a product
//	@Tags		orders
//	@Produce	json
//	@Param		productId	query		string	true	"Product ID"
//	@Success	200			{array}		models.Order
//	@Failure	400			{object}	common.ErrorResponse
//	@Failure	404			{object}	common.ErrorResponse
//	@Router		/api/orders/search [get]
func (h *OrderHandlers) SearchOrders(c echo.Context) error {
	productID, err := common.ValidateUUID(c.QueryParam("productId"), "productId")
	if err != nil {
		return common.SendValidationError(c, "productId", err.Error())
	}

	orders, err := h.orderService.SearchByProductID(c.Request().Context(), productID)
	if err != nil {
		return sendServiceError(c, err)
	}
	if len(orders) == 0 {
		return common.SendNotFoundMessage(c, "no orders found")
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id
//
//	@Summary	Get an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	models.Order
//	@Failure	400	{object}	common.ErrorResponse
//	@Failure	404	{object}	common.ErrorResponse
//	@Router		/api/orders/{id} [get]
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrder handles PUT /api/orders/:id. Only the delivery address can change.
//
//	@Summary	Change the delivery address
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Order ID"
//	@Param		order	body		models.UpdateOrderRequest	true	"New address"
//	@Success	200		{object}	common.MessageResponse
//	@Failure	400		{object}	common.ErrorResponse
//	@Failure	404		{object}	common.ErrorResponse
//	@Router		/api/orders/{id} [put]
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	var req models.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if _, err := h.orderService.UpdateDeliveryAddress(c.Request().Context(), id, req.DeliveryAddress); err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, common.MessageResponse{Message: "delivery address updated"})
}

// DeleteOrder handles DELETE /api/orders/:id
//
//	@Summary	Delete an order
//	@Tags		orders
//	@Param		id	path	string	true	"Order ID"
//	@Success	204
//	@Failure	404	{object}	common.ErrorResponse
//	@Router		/api/orders/{id} [delete]
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return sendServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
