package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/utp-plus/report-service/internal/api/http/handlers"
	"github.com/utp-plus/report-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reports        *handlers.ReportsHandler
	Feedback       *handlers.FeedbackHandler
	Users          *handlers.UsersHandler
	SOS            *handlers.SOSHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	api.Post("/reports", cfg.Reports.Create)
	api.Get("/reports", cfg.Reports.List)
	api.Get("/reports/quota", cfg.Reports.Quota)
	api.Get("/reports/:id", cfg.Reports.Get)

	api.Post("/feedback", cfg.Feedback.Create)
	api.Get("/feedback/mine", cfg.Feedback.Mine)
	api.Get("/feedback", auth.RequireAdmin(), cfg.Feedback.ListAll)

	api.Post("/sos", cfg.SOS.Trigger)

	users := api.Group("/users", auth.RequireAdmin())
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
}
