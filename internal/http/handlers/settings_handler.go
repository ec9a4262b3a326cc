package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.Settings.Settings(c.UserContext()))
}

// PUT /admin/api/settings
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var body struct {
		PromoText string `json:"promoText"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalid(c, "promoText", "malformed request")
	}
	text, ok := validate.PromoText(body.PromoText)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "promoText"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Promo text must be 1 to 15 words",
			"fields": map[string]string{"promoText": "at most 15 words"},
			"limit":  domain.MaxPromoWords,
		})
	}
	st, err := h.Settings.SetPromoText(c.UserContext(), text)
	if err != nil {
		return fail(c, "admin.settings.save", err)
	}
	applog.Audit(c, "admin.settings.save", map[string]any{"promo_text": text})
	return c.JSON(st)
}
