package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tableside/tableside-api/internal/config"
	"github.com/tableside/tableside-api/internal/handler"
	"github.com/tableside/tableside-api/internal/middleware"
	"github.com/tableside/tableside-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler          *handler.AuthHandler
	AdminMenuHandler     *handler.AdminMenuHandler
	AdminSpecialHandler  *handler.AdminSpecialHandler
	AdminEventHandler    *handler.AdminEventHandler
	AdminUserHandler     *handler.AdminUserHandler
	AdminTenantHandler   *handler.AdminTenantHandler
	AdminAuditHandler    *handler.AdminAuditHandler
	AdminSportsHandler   *handler.AdminSportsHandler
	UploadHandler        *handler.UploadHandler
	PublicContentHandler *handler.PublicContentHandler
	JobsHandler          *handler.JobsHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/healthz", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Public site content, keyed by tenant slug. No authentication.
	if deps.PublicContentHandler != nil {
		deps.PublicContentHandler.Register(api.Group("/public"))
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	// Admin backend. Every route requires a valid token; permission checks
	// are attached per route by the handlers.
	admin := api.Group("/admin", middleware.JWTProtected(cfg.JWTSecret))
	if deps.AdminMenuHandler != nil {
		deps.AdminMenuHandler.Register(admin.Group("/menu"))
	}
	if deps.AdminSpecialHandler != nil {
		deps.AdminSpecialHandler.Register(admin.Group("/specials"))
	}
	if deps.AdminEventHandler != nil {
		deps.AdminEventHandler.Register(admin.Group("/events"))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
	if deps.AdminTenantHandler != nil {
		deps.AdminTenantHandler.Register(admin.Group("/tenant"))
	}
	if deps.AdminAuditHandler != nil {
		deps.AdminAuditHandler.Register(admin.Group("/audit"))
	}
	if deps.AdminSportsHandler != nil {
		deps.AdminSportsHandler.Register(admin.Group("/sports"))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(admin.Group("/uploads"))
	}

	// Out-of-band maintenance triggers, guarded by the shared job token
	// instead of a user session.
	if deps.JobsHandler != nil {
		jobs := api.Group("/jobs", middleware.JobToken(cfg.JobToken))
		deps.JobsHandler.Register(jobs)
	}
}
