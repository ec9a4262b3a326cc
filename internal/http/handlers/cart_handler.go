package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req services.AddRequest
	if c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return invalid(c, "body", "malformed request")
		}
		req.Quantity = validate.QtyInt(req.Quantity)
	} else {
		// plain form post from a product page
		req.ProductID = c.FormValue("productId")
		req.Length = c.FormValue("length")
		req.Color = c.FormValue("color")
		req.Quantity = validate.Qty(c.FormValue("qty"))
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return invalid(c, "productId", "missing productId")
	}
	req.ProductID = pid
	line, err := h.Cart.Add(c.UserContext(), sessionID(c), req)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": pid, "qty": line.Quantity})
	return c.Status(fiber.StatusCreated).JSON(line)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.UserContext(), sessionID(c))
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}

// PATCH /api/v1/cart/:id
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalid(c, "quantity", "malformed request")
	}
	if err := h.Cart.UpdateQuantity(c.UserContext(), sessionID(c), c.Params("id"), validate.QtyInt(body.Quantity)); err != nil {
		return fail(c, "cart.update", err)
	}
	return h.View(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.Cart.Remove(c.UserContext(), sessionID(c), c.Params("id")); err != nil {
		return fail(c, "cart.remove", err)
	}
	return h.View(c)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.UserContext(), sessionID(c)); err != nil {
		return fail(c, "cart.clear", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
