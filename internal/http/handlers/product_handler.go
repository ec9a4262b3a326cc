package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"emytrends/internal/catalog"
	"emytrends/internal/domain"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Facets(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.Facets())
}

// List serves the shop grid. Group filters take comma separated values.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := services.Query{
		Featured: c.QueryBool("featured"),
		Selection: catalog.Selection{
			Product:        catalog.ParseList(c.Query("product")),
			HairExtensions: catalog.ParseList(c.Query("hairExtensions")),
			Shade:          catalog.ParseList(c.Query("shade")),
			Length:         catalog.ParseList(c.Query("length")),
		},
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		if !domain.Contains(domain.Categories, cat) {
			return invalid(c, "category", "Unknown category")
		}
		q.Category = cat
	}
	products := h.Catalog.Products(c.UserContext(), q)
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return invalid(c, "product", "This item is no longer available")
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	if err != nil {
		return fail(c, "product.detail", err)
	}
	return c.JSON(fiber.Map{"product": p, "related": h.Catalog.Related(c.UserContext(), p)})
}
