package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}
	if _, ok := validate.ID(productID); !ok {
		return invalid(c, "productId", "invalid productId")
	}
	avail, err := h.Inv.CheckAvailability(c.UserContext(), productID)
	if err != nil {
		return fail(c, "inventory.check", err)
	}
	return c.JSON(avail)
}

// GET /admin/api/inventory
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.Inv.List(c.UserContext())
	if err != nil {
		return fail(c, "admin.inventory.list", err)
	}
	return c.JSON(fiber.Map{"rows": rows})
}

// PUT /admin/api/inventory/:id
func (h *InventoryHandler) Set(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return invalid(c, "productId", "invalid productId")
	}
	var body struct {
		InStock *bool `json:"inStock"`
	}
	if err := c.BodyParser(&body); err != nil || body.InStock == nil {
		return invalid(c, "inStock", "inStock is required")
	}
	if err := h.Inv.SetInStock(c.UserContext(), pid, *body.InStock); err != nil {
		return fail(c, "admin.inventory.save", err)
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": pid, "in_stock": *body.InStock})
	avail, err := h.Inv.CheckAvailability(c.UserContext(), pid)
	if err != nil {
		return fail(c, "admin.inventory.save", err)
	}
	return c.JSON(avail)
}
