package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"emytrends/internal/log"
	"emytrends/internal/services"
	"emytrends/internal/validate"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := sessionID(c)
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "body", "malformed request")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if !validate.Password(req.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	u, err := h.Auth.Login(c.UserContext(), sid, email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	c.Locals("userID", u.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(u)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := sessionID(c)
	if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
		return fail(c, "auth.logout", err)
	}
	setSID(c, "", h.CookieSecure, time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me reports the signed-in user, or null.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": currentUser(c)})
}
