package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emytrends/internal/forms"
	"emytrends/internal/imaging"
	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

// AdminHandler backs the dashboard: analytics, customers and the product
// and blog editors.
type AdminHandler struct {
	Analytics *services.AnalyticsService
	Auth      *services.AuthService
	Catalog   *services.CatalogService
	Blogs     *services.BlogService
}

// GET /admin/api/analytics
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	sum, err := h.Analytics.Summary(c.UserContext())
	if err != nil {
		return fail(c, "admin.analytics", err)
	}
	return c.JSON(sum)
}

// UsersPage lists customers (admins excluded).
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Auth.Customers(c.UserContext())
	if err != nil {
		return fail(c, "admin.users.list", err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// DeleteUser deletes a customer and their account data; orders are kept.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "User not found")
	}
	if err := h.Auth.DeleteCustomer(c.UserContext(), id); err != nil {
		return fail(c, "admin.users.delete", err)
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /admin/api/products and PUT /admin/api/products/:id. The body is
// multipart: "data" carries the JSON editor state, "images" the new files.
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" {
		if _, ok := validate.ID(id); !ok {
			return page(c, fiber.StatusNotFound, "This item is no longer available")
		}
	}
	var in forms.ProductInput
	files, err := multipartData(c, &in, "images")
	if err != nil {
		return fail(c, "admin.products.save", err)
	}
	p, err := h.Catalog.Save(c.UserContext(), id, in, files["images"])
	if err != nil {
		return fail(c, "admin.products.save", err)
	}
	applog.Audit(c, "admin.products.save", map[string]any{
		"product": p.ID, "created": id == "", "uploads": len(files["images"]),
	})
	if id == "" {
		c.Status(fiber.StatusCreated)
	}
	return c.JSON(p)
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "This item is no longer available")
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return fail(c, "admin.products.delete", err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /admin/api/blogs, drafts included.
func (h *AdminHandler) ListBlogs(c *fiber.Ctx) error {
	posts, err := h.Blogs.All(c.UserContext())
	if err != nil {
		return fail(c, "admin.blogs.list", err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (h *AdminHandler) Blog(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Post not found")
	}
	b, err := h.Blogs.Get(c.UserContext(), id, true)
	if err != nil {
		return fail(c, "admin.blogs.get", err)
	}
	return c.JSON(b)
}

// SaveBlog takes "data", an optional "featuredImage" file and gallery
// files under "images".
func (h *AdminHandler) SaveBlog(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" {
		if _, ok := validate.ID(id); !ok {
			return page(c, fiber.StatusNotFound, "Post not found")
		}
	}
	var in forms.BlogInput
	files, err := multipartData(c, &in, "featuredImage", "images")
	if err != nil {
		return fail(c, "admin.blogs.save", err)
	}
	var featured *imaging.File
	if fs := files["featuredImage"]; len(fs) > 0 {
		featured = &fs[0]
	}
	b, err := h.Blogs.Save(c.UserContext(), id, in, featured, files["images"])
	if err != nil {
		return fail(c, "admin.blogs.save", err)
	}
	applog.Audit(c, "admin.blogs.save", map[string]any{"blog": b.ID, "created": id == "", "published": b.Published})
	if id == "" {
		c.Status(fiber.StatusCreated)
	}
	return c.JSON(b)
}

func (h *AdminHandler) DeleteBlog(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Post not found")
	}
	if err := h.Blogs.Delete(c.UserContext(), id); err != nil {
		return fail(c, "admin.blogs.delete", err)
	}
	applog.Audit(c, "admin.blogs.delete", map[string]any{"blog": id})
	return c.SendStatus(fiber.StatusNoContent)
}
