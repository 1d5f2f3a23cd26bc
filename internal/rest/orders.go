package rest

import (
	"context"
	"net/http"
	"storefront/business/orders"
	"storefront/domain"
	"storefront/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, in orders.CreateOrderInput) (domain.OrderDetail, error)
		GetAllOrders(ctx context.Context) ([]domain.OrderDetail, error)
		GetOrder(ctx context.Context, id int64) (domain.OrderDetail, error)
		ReplaceOrder(ctx context.Context, id int64, in orders.CreateOrderInput) (domain.OrderDetail, error)
		PatchOrder(ctx context.Context, id int64, in orders.PatchOrderInput) (domain.OrderDetail, error)
		DeleteOrder(ctx context.Context, id int64) (domain.Orders, error)
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	var request orders.CreateOrderInput
	if err := bind(c, &request); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrder(ctx, request)
	if err != nil {
		logger.Error("Failed to create order", err)
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	list, err := h.ordersService.GetAllOrders(ctx)
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(list))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, id)
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) ReplaceOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var request orders.CreateOrderInput
	if err := bind(c, &request); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.ReplaceOrder(ctx, id, request)
	if err != nil {
		logger.Error("Failed to replace order", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) PatchOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var request orders.PatchOrderInput
	if err := bind(c, &request); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.PatchOrder(ctx, id, request)
	if err != nil {
		logger.Error("Failed to update order", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.DeleteOrder(ctx, id)
	if err != nil {
		logger.Error("Failed to delete order", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
