package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type WishlistHandler struct {
	Wish    *services.WishlistService
	Catalog *services.CatalogService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "wishlist.list", err)
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// Save adds the product with its current title, price and primary image.
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId" form:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalid(c, "productId", "missing productId")
	}
	pid, ok := validate.ID(body.ProductID)
	if !ok {
		return invalid(c, "productId", "missing productId")
	}
	p, err := h.Catalog.Product(c.UserContext(), pid)
	if err != nil {
		return fail(c, "wishlist.save", err)
	}
	it, err := h.Wish.Add(c.UserContext(), currentUser(c).ID, services.WishlistEntry{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.PrimaryImage(),
	})
	if err != nil {
		return fail(c, "wishlist.save", err)
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	return c.Status(fiber.StatusCreated).JSON(it)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return invalid(c, "productId", "missing productId")
	}
	if err := h.Wish.Remove(c.UserContext(), currentUser(c).ID, pid); err != nil {
		return fail(c, "wishlist.unsave", err)
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) Contains(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return invalid(c, "productId", "missing productId")
	}
	in, err := h.Wish.Contains(c.UserContext(), currentUser(c).ID, pid)
	if err != nil {
		return fail(c, "wishlist.contains", err)
	}
	return c.JSON(fiber.Map{"productId": pid, "saved": in})
}

func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	if err := h.Wish.Clear(c.UserContext(), currentUser(c).ID); err != nil {
		return fail(c, "wishlist.clear", err)
	}
	applog.Audit(c, "wishlist.clear", nil)
	return c.SendStatus(fiber.StatusNoContent)
}
