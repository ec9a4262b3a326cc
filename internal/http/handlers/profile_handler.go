package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	p, err := h.Profiles.Get(c.UserContext(), currentUser(c))
	if err != nil {
		return fail(c, "profile.get", err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	var patch services.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return invalid(c, "body", "malformed request")
	}
	if patch.Email != nil && *patch.Email != "" {
		if _, ok := validate.Email(*patch.Email); !ok {
			return invalid(c, "email", "Please enter a valid email")
		}
	}
	if patch.Phone != nil {
		if _, ok := validate.Phone(*patch.Phone); !ok {
			return invalid(c, "phone", "Please enter a valid phone number")
		}
	}
	p, err := h.Profiles.Save(c.UserContext(), currentUser(c), patch)
	if err != nil {
		return fail(c, "profile.save", err)
	}
	applog.Info(c, "profile.save", nil)
	return c.JSON(p)
}

// POST /api/v1/profile/image, multipart field "image".
func (h *ProfileHandler) Image(c *fiber.Ctx) error {
	var none struct{}
	files, err := multipartData(c, &none, "image")
	if err != nil {
		return fail(c, "profile.image", err)
	}
	if len(files["image"]) == 0 {
		return invalid(c, "image", "Please choose an image")
	}
	p, err := h.Profiles.SetImage(c.UserContext(), currentUser(c), files["image"][0])
	if err != nil {
		return fail(c, "profile.image", err)
	}
	applog.Info(c, "profile.image", map[string]any{"url": p.ProfileImage})
	return c.JSON(p)
}
