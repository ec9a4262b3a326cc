package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"emytrends/internal/catalog"
	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		return c.JSON(services.SearchResult{Products: []domain.Product{}, Pages: []catalog.Page{}})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enter a valid keyword"})
	}
	res := h.Catalog.Search(c.UserContext(), q)
	applog.Info(c, "search", map[string]any{"q": q, "products": len(res.Products), "pages": len(res.Pages)})
	return c.JSON(res)
}
