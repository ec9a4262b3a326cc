package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"emytrends/internal/domain"
	"emytrends/internal/forms"
	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type AddressHandler struct {
	Addrs *services.AddressService
}

func checkAddress(a domain.Address) error {
	errs := forms.Errors{}
	if _, ok := validate.Name(a.FullName); !ok {
		errs["fullName"] = "Full name is required"
	}
	if _, ok := validate.Phone(a.Phone); !ok || strings.TrimSpace(a.Phone) == "" {
		errs["phone"] = "A valid phone number is required"
	}
	for field, v := range map[string]string{
		"country":       a.Country,
		"city":          a.City,
		"streetAddress": a.StreetAddress,
	} {
		if strings.TrimSpace(v) == "" {
			errs[field] = "This field is required"
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (h *AddressHandler) parse(c *fiber.Ctx) (domain.Address, error) {
	var a domain.Address
	if err := c.BodyParser(&a); err != nil {
		return a, forms.Errors{"body": "malformed request"}
	}
	return a, checkAddress(a)
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	out, err := h.Addrs.List(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "address.list", err)
	}
	return c.JSON(fiber.Map{"addresses": out})
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	a, err := h.parse(c)
	if err != nil {
		return fail(c, "address.create", err)
	}
	saved, err := h.Addrs.Add(c.UserContext(), currentUser(c).ID, a)
	if err != nil {
		return fail(c, "address.create", err)
	}
	applog.Info(c, "address.create", map[string]any{"address_id": saved.ID, "default": saved.IsDefault})
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Address not found")
	}
	a, err := h.parse(c)
	if err != nil {
		return fail(c, "address.update", err)
	}
	a.ID = id
	saved, err := h.Addrs.Update(c.UserContext(), currentUser(c).ID, a)
	if err != nil {
		return fail(c, "address.update", err)
	}
	return c.JSON(saved)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Address not found")
	}
	if err := h.Addrs.Delete(c.UserContext(), currentUser(c).ID, id); err != nil {
		return fail(c, "address.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/v1/addresses/:id/default
func (h *AddressHandler) SetDefault(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return page(c, fiber.StatusNotFound, "Address not found")
	}
	uid := currentUser(c).ID
	if err := h.Addrs.SetDefault(c.UserContext(), uid, id); err != nil {
		return fail(c, "address.default", err)
	}
	return h.List(c)
}
