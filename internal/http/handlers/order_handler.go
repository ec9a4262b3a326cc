package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

const defaultPayment = "Cash on Delivery"

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)
	var co services.Checkout
	if err := c.BodyParser(&co); err != nil {
		return invalid(c, "body", "malformed request")
	}
	if co.AddressID != "" {
		if _, ok := validate.ID(co.AddressID); !ok {
			return invalid(c, "addressId", "Please choose a saved address")
		}
	}
	if a := co.Address; a != nil {
		if _, ok := validate.Name(a.Name); !ok {
			return invalid(c, "shippingAddress.name", "Please enter the recipient's name")
		}
		if _, ok := validate.Phone(a.Phone); !ok {
			return invalid(c, "shippingAddress.phone", "Please enter a valid phone number")
		}
	}
	if strings.TrimSpace(co.PaymentMethod) == "" {
		co.PaymentMethod = defaultPayment
	}
	pm, ok := validate.Name(co.PaymentMethod)
	if !ok {
		return invalid(c, "paymentMethod", "Unsupported payment method")
	}
	co.PaymentMethod = pm
	if co.DeliveryFee != nil && co.DeliveryFee.IsNegative() {
		return invalid(c, "deliveryFee", "Delivery fee cannot be negative")
	}

	o, err := h.Order.Place(c.UserContext(), sessionID(c), u, co)
	if err != nil {
		return fail(c, "order.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"total":    o.TotalAmount.String(),
		"items":    len(o.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Order not found")
	}
	o, err := h.Order.GetFor(c.UserContext(), currentUser(c), oid)
	if err != nil {
		return fail(c, "order.view", err)
	}
	return c.JSON(o)
}

// History lists orders for the current logged-in user, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.UserOrders(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "orders.history", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GET /admin/api/orders
func (h *OrderHandler) All(c *fiber.Ctx) error {
	orders, err := h.Order.All(c.UserContext())
	if err != nil {
		return fail(c, "admin.orders.list", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// PUT /admin/api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Order not found")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalid(c, "status", "malformed request")
	}
	status, ok := validate.Status(body.Status)
	if !ok {
		return invalid(c, "status", "Unknown order status")
	}
	o, err := h.Order.UpdateStatus(c.UserContext(), id, status)
	if err != nil {
		return fail(c, "admin.orders.update", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": string(status)})
	return c.JSON(o)
}
