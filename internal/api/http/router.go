package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pinktech/kounty-api/internal/api/http/handlers"
	"github.com/pinktech/kounty-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Datasources *handlers.DatasourcesHandler
	Credentials *handlers.CredentialsHandler

	APIKey         string
	AuthMiddleware *auth.Middleware
	Registry       *prometheus.Registry
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", auth.APIKeyMiddleware(cfg.APIKey))

	api.Post("/sign-in", cfg.Auth.SignIn)
	api.Post("/sign-up", cfg.Auth.SignUp)
	api.Post("/confirm-sign-up", cfg.Auth.ConfirmSignUp)
	api.Post("/forgot-password", cfg.Auth.ForgotPassword)
	api.Post("/confirm-forgot-password", cfg.Auth.ConfirmForgotPassword)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/datasources", cfg.Datasources.Retrieve)
	protected.Get("/datasources/:datasourceId", cfg.Credentials.RetrieveByDatasource)

	protected.Post("/authentication-credentials", cfg.Credentials.Create)
	protected.Get("/authentication-credentials/:id", cfg.Credentials.Show)
	protected.Put("/authentication-credentials/:id", cfg.Credentials.Update)
	protected.Put("/authentication-credentials/:id/status", cfg.Credentials.UpdateStatus)
	protected.Delete("/authentication-credentials/:id", cfg.Credentials.Delete)
}
