package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
	"emytrends/internal/services"
)

const sidCookie = "sid"

// Sessions hands every visitor a sid cookie and attaches the signed-in user,
// if any, to the request.
func Sessions(auth *services.AuthService, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if sid == "" {
			sid = uuid.NewString()
			setSID(c, sid, secure, time.Time{})
		} else if u, err := auth.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
			c.Locals("user", u)
			c.Locals("userID", u.ID)
		}
		c.Locals(sidCookie, sid)
		return c.Next()
	}
}

func setSID(c *fiber.Ctx, sid string, secure bool, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  expires,
	})
}

func sessionID(c *fiber.Ctx) string {
	if sid, ok := c.Locals(sidCookie).(string); ok && sid != "" {
		return sid
	}
	return c.Cookies(sidCookie)
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func lookupUser(c *fiber.Ctx, auth *services.AuthService) *domain.User {
	if u := currentUser(c); u != nil {
		return u
	}
	sid := c.Cookies(sidCookie)
	if sid == "" {
		return nil
	}
	u, err := auth.CurrentUser(c.UserContext(), sid)
	if err != nil || u == nil {
		return nil
	}
	c.Locals("user", u)
	c.Locals("userID", u.ID)
	return u
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := lookupUser(c, auth)
		if u == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "anonymous"})
			return page(c, fiber.StatusUnauthorized, "Please sign in")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "role"})
			return page(c, fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is signed in.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if lookupUser(c, auth) == nil {
			applog.Security(c, "access.denied.user", nil)
			return page(c, fiber.StatusUnauthorized, "Please sign in")
		}
		return c.Next()
	}
}
