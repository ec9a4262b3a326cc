package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/pkg/errors"

	"emytrends/internal/config"
	"emytrends/internal/http/web"
	applog "emytrends/internal/log"
)

// CSRFHeader carries the token from the csrf_ cookie on unsafe requests.
const CSRFHeader = "X-Csrf-Token"

type Options struct {
	BodyLimit    int
	CookieSecure bool
	AccessLog    bool

	GlobalLimit       int
	LoginLimit        int
	AvailabilityLimit int
	SearchLimit       int
}

func OptionsFrom(cfg config.Config) Options {
	return Options{
		BodyLimit:         cfg.BodyLimitMB << 20,
		CookieSecure:      cfg.CookieSecure,
		AccessLog:         true,
		GlobalLimit:       120,
		LoginLimit:        5,
		AvailabilityLimit: 15,
		SearchLimit:       30,
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
		if fe.Code == fiber.StatusNotFound {
			return page(c, fe.Code, "Page not found")
		}
		return page(c, fe.Code, fe.Message)
	}
	applog.Error(c, "server.error", err, nil)
	return page(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
}

func limitReached(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		applog.Security(c, action, nil)
		return page(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
	}
}

func NewApp(d *Deps, opts Options) *fiber.App {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(Sessions(d.Auth, opts.CookieSecure))
	app.Use(limiter.New(limiter.Config{
		Max:        opts.GlobalLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
		LimitReached: limitReached("rate.global.hit"),
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeader,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   opts.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
			return page(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))

	app.Get("/media/*", func(c *fiber.Ctx) error {
		full, err := d.Store.Resolve(c.Params("*"))
		if err != nil {
			applog.Security(c, "media.traversal.block", map[string]any{"path": c.Params("*")})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(full, true)
	})
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")
	api.Get("/facets", d.ProductHandler.Facets)
	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/search", limiter.New(limiter.Config{
		Max:          opts.SearchLimit,
		Expiration:   time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|search" },
		LimitReached: limitReached("rate.search.hit"),
	}), d.SearchHandler.Search)
	api.Get("/availability", limiter.New(limiter.Config{
		Max:          opts.AvailabilityLimit,
		Expiration:   30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|avail" },
		LimitReached: limitReached("rate.availability.hit"),
	}), d.InventoryHandler.Check)
	api.Get("/settings", d.SettingsHandler.Get)
	api.Get("/blogs", d.BlogHandler.List)
	api.Get("/blogs/:id", d.BlogHandler.Get)
	api.Get("/articles", d.BlogHandler.Articles)
	api.Get("/articles/:slug", d.BlogHandler.Article)
	api.Get("/article-categories", d.BlogHandler.Categories)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Delete("/cart", d.CartHandler.Clear)
	api.Patch("/cart/:id", d.CartHandler.Update)
	api.Delete("/cart/:id", d.CartHandler.Remove)

	api.Post("/login", limiter.New(limiter.Config{
		Max:          opts.LoginLimit,
		Expiration:   10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|login" },
		LimitReached: limitReached("rate.login.hit"),
	}), d.AuthHandler.Login)
	api.Post("/logout", d.AuthHandler.Logout)
	api.Get("/me", d.AuthHandler.Me)

	requireUser := RequireUser(d.Auth)
	api.Post("/orders", requireUser, d.OrderHandler.Place)
	api.Get("/orders", requireUser, d.OrderHandler.History)
	api.Get("/orders/:id", requireUser, d.OrderHandler.View)
	api.Get("/addresses", requireUser, d.AddressHandler.List)
	api.Post("/addresses", requireUser, d.AddressHandler.Create)
	api.Put("/addresses/:id", requireUser, d.AddressHandler.Update)
	api.Delete("/addresses/:id", requireUser, d.AddressHandler.Delete)
	api.Post("/addresses/:id/default", requireUser, d.AddressHandler.SetDefault)
	api.Get("/wishlist", requireUser, d.WishlistHandler.List)
	api.Post("/wishlist", requireUser, d.WishlistHandler.Save)
	api.Delete("/wishlist", requireUser, d.WishlistHandler.Clear)
	api.Get("/wishlist/:productId", requireUser, d.WishlistHandler.Contains)
	api.Delete("/wishlist/:productId", requireUser, d.WishlistHandler.Unsave)
	api.Get("/profile", requireUser, d.ProfileHandler.Get)
	api.Patch("/profile", requireUser, d.ProfileHandler.Save)
	api.Post("/profile/image", requireUser, d.ProfileHandler.Image)

	admin := app.Group("/admin/api", RequireAdmin(d.Auth))
	admin.Get("/analytics", d.AdminHandler.Dashboard)
	admin.Get("/users", d.AdminHandler.UsersPage)
	admin.Delete("/users/:id", d.AdminHandler.DeleteUser)
	admin.Post("/products", d.AdminHandler.SaveProduct)
	admin.Put("/products/:id", d.AdminHandler.SaveProduct)
	admin.Delete("/products/:id", d.AdminHandler.DeleteProduct)
	admin.Get("/blogs", d.AdminHandler.ListBlogs)
	admin.Get("/blogs/:id", d.AdminHandler.Blog)
	admin.Post("/blogs", d.AdminHandler.SaveBlog)
	admin.Put("/blogs/:id", d.AdminHandler.SaveBlog)
	admin.Delete("/blogs/:id", d.AdminHandler.DeleteBlog)
	admin.Get("/orders", d.OrderHandler.All)
	admin.Put("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.Get("/inventory", d.InventoryHandler.List)
	admin.Put("/inventory/:id", d.InventoryHandler.Set)
	admin.Put("/settings", d.SettingsHandler.Update)

	app.Use(func(c *fiber.Ctx) error {
		return page(c, fiber.StatusNotFound, "Page not found")
	})
	return app
}
