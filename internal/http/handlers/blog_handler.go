package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"emytrends/internal/services"
	"emytrends/internal/validate"
)

// BlogHandler serves the in-house blog and the WordPress article reader.
type BlogHandler struct {
	Blogs *services.BlogService
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	posts := h.Blogs.Published(c.UserContext())
	return c.JSON(fiber.Map{"posts": posts, "count": len(posts)})
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Post not found")
	}
	b, err := h.Blogs.Get(c.UserContext(), id, false)
	if err != nil {
		return fail(c, "blog.get", err)
	}
	return c.JSON(b)
}

// GET /api/v1/articles?category=&perPage=
func (h *BlogHandler) Articles(c *fiber.Ctx) error {
	cat := strings.TrimSpace(c.Query("category"))
	if cat != "" {
		if _, ok := validate.Slug(cat); !ok {
			return invalid(c, "category", "Unknown category")
		}
	}
	arts := h.Blogs.Articles(c.UserContext(), cat, validate.PerPage(c.Query("perPage"), 10))
	return c.JSON(fiber.Map{"articles": arts, "count": len(arts)})
}

func (h *BlogHandler) Article(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Article not found")
	}
	a, found := h.Blogs.Article(c.UserContext(), slug)
	if !found {
		return page(c, fiber.StatusNotFound, "Article not found")
	}
	return c.JSON(a)
}

func (h *BlogHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.Blogs.ArticleCategories(c.UserContext())})
}
