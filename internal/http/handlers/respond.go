package handlers

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"emytrends/internal/forms"
	"emytrends/internal/imaging"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
	"emytrends/internal/services"
)

func isAPI(c *fiber.Ctx) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/admin/api/")
}

// page answers with a message: JSON under the API prefixes, the HTML
// notfound page elsewhere.
func page(c *fiber.Ctx, status int, msg string) error {
	c.Status(status)
	if isAPI(c) {
		return c.JSON(fiber.Map{"error": msg})
	}
	if err := c.Render("notfound", fiber.Map{"Message": msg}); err != nil {
		return c.SendString(msg)
	}
	return nil
}

func invalid(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return page(c, fiber.StatusBadRequest, msg)
}

// fail maps domain errors onto statuses. Anything unrecognised goes to the
// app ErrorHandler, which logs it and answers with a generic 500.
func fail(c *fiber.Ctx, action string, err error) error {
	var ferrs forms.Errors
	switch {
	case errors.As(err, &ferrs):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "fields": ferrs})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please fix the highlighted fields", "fields": ferrs})
	case errors.Is(err, repos.ErrProductNotFound):
		return page(c, fiber.StatusNotFound, "This item is no longer available")
	case errors.Is(err, repos.ErrOrderNotFound):
		return page(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrForbidden) && strings.HasPrefix(action, "order."):
		// Someone else's order reads as missing.
		applog.Security(c, "access.denied.order", map[string]any{"action": action})
		return page(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, repos.ErrAddressNotFound):
		return page(c, fiber.StatusNotFound, "Address not found")
	case errors.Is(err, repos.ErrBlogNotFound):
		return page(c, fiber.StatusNotFound, "Post not found")
	case errors.Is(err, repos.ErrUserNotFound):
		return page(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrLineGone):
		return page(c, fiber.StatusNotFound, "That item is no longer in your cart")
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, "access.denied", map[string]any{"action": action})
		return page(c, fiber.StatusForbidden, "Access denied")
	case errors.Is(err, forms.ErrTooManySwatches):
		return invalid(c, "colorSwatches", forms.ErrTooManySwatches.Error())
	case errors.Is(err, services.ErrEmptyCart):
		return page(c, fiber.StatusBadRequest, "Your cart is empty")
	case errors.Is(err, services.ErrOutOfStock):
		applog.Info(c, action+".out_of_stock", map[string]any{"detail": err.Error()})
		return page(c, fiber.StatusConflict, "Some items are out of stock. Please review your cart.")
	case errors.Is(err, services.ErrNoAddress):
		return invalid(c, "shippingAddress", "Please choose or enter a shipping address")
	case errors.Is(err, services.ErrBadStatus):
		return invalid(c, "status", "Unknown order status")
	case errors.Is(err, imaging.ErrDecode), errors.Is(err, imaging.ErrEncode):
		applog.Error(c, action, err, nil)
		return page(c, fiber.StatusBadRequest, "We could not process one of the images. Please try another file.")
	}
	return errors.Wrap(err, action)
}

// multipartData decodes the JSON "data" field of a multipart submission
// into v and reads the files under each of fields.
func multipartData(c *fiber.Ctx, v any, fields ...string) (map[string][]imaging.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, forms.Errors{"body": "expected a multipart form"}
	}
	if raw := form.Value["data"]; len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw[0]), v); err != nil {
			return nil, forms.Errors{"data": "malformed form data"}
		}
	}
	out := make(map[string][]imaging.File, len(fields))
	for _, field := range fields {
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				return nil, errors.Wrapf(err, "open upload %s", fh.Filename)
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return nil, errors.Wrapf(err, "read upload %s", fh.Filename)
			}
			out[field] = append(out[field], imaging.File{
				Name:        fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Data:        data,
			})
		}
	}
	return out, nil
}
