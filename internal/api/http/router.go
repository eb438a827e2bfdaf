package http

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/finderapp/finder-service/internal/api/http/handlers"
	"github.com/finderapp/finder-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Persons       *handlers.PersonsHandler
	Subscriptions *handlers.SubscriptionsHandler
	Notifications *handlers.NotificationsHandler
	SessionGate   *auth.SessionGate
	WebDir        string
}

// RegisterRoutes wires HTTP routes. The session gate runs in front of
// everything; the role middleware on API groups turns its guarantees into
// JSON errors for non-browser clients that bypass redirects.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.SessionGate.Handle)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)
	authGroup.Get("/pending-authorities", auth.RequireAuthority(), cfg.Auth.PendingAuthorities)
	authGroup.Post("/verify-authority", auth.RequireAuthority(), cfg.Auth.VerifyAuthority)

	api.Get("/search", auth.RequireAuthenticated(), cfg.Persons.Search)

	prisoners := api.Group("/prisoners", auth.RequireAuthenticated())
	prisoners.Get("/", cfg.Persons.List)
	prisoners.Post("/", cfg.Persons.Create)

	manage := prisoners.Group("/manage", auth.RequireAuthority())
	manage.Patch("/:id", cfg.Persons.Update)
	manage.Delete("/:id", cfg.Persons.Delete)

	subscriptions := api.Group("/subscriptions", auth.RequireAuthenticated())
	subscriptions.Get("/", cfg.Subscriptions.List)
	subscriptions.Post("/", cfg.Subscriptions.Create)
	subscriptions.Patch("/:id", cfg.Subscriptions.Toggle)
	subscriptions.Delete("/:id", cfg.Subscriptions.Delete)

	notifications := api.Group("/notifications", auth.RequireAuthenticated())
	notifications.Get("/", cfg.Notifications.List)
	notifications.Patch("/:id/read", cfg.Notifications.MarkRead)

	registerPages(app, cfg.WebDir)
}

// registerPages serves the client bundle so page-level redirects from the
// session gate land somewhere. Rendering itself lives entirely in the
// client.
func registerPages(app *fiber.App, webDir string) {
	if webDir == "" {
		return
	}
	if _, err := os.Stat(webDir); err != nil {
		return
	}

	app.Static("/", webDir)

	index := filepath.Join(webDir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
}
