package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-api/internal/api/dto"
	"github.com/spec-kit/storefront-api/internal/auth"
	"github.com/spec-kit/storefront-api/internal/service"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

// OrdersHandler exposes order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create handles POST /orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	order, err := h.orders.Create(ctx, auth.MustClaim(ctx), service.OrderInput{
		Items:       req.Items,
		Tax:         req.Tax,
		ShippingFee: req.ShippingFee,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"order": dto.NewOrderResponse(order)})
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": dto.NewOrderListResponse(orders), "count": len(orders)})
}

// ListMine handles GET /orders/showAllMyOrders.
func (h *OrdersHandler) ListMine(c *fiber.Ctx) error {
	ctx := c.UserContext()
	orders, err := h.orders.ListMine(ctx, auth.MustClaim(ctx))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": dto.NewOrderListResponse(orders), "count": len(orders)})
}

// Get handles GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	order, err := h.orders.Get(ctx, auth.MustClaim(ctx), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order": dto.NewOrderResponse(order)})
}

// Update handles PATCH /orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	order, err := h.orders.MarkPaid(ctx, auth.MustClaim(ctx), c.Params("id"), req.PaymentIntentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order": dto.NewOrderResponse(order)})
}
