package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/submission-gateway/internal/config"
	"github.com/noah-isme/submission-gateway/internal/handler"
	"github.com/noah-isme/submission-gateway/internal/observability"
)

// MetricsPath is where the Prometheus scrape endpoint is served.
const MetricsPath = "/metrics"

// ExtensionMethods are accepted on top of fiber.DefaultMethods so the submissions
// endpoint can answer them with 405. Fiber rejects any verb missing from
// RequestMethods with 400 before middleware runs.
var ExtensionMethods = []string{
	"PURGE", "PROPFIND", "PROPPATCH", "MKCOL", "COPY", "MOVE",
	"LOCK", "UNLOCK", "REPORT", "SEARCH", "LINK", "UNLINK",
}

// RequestMethods lists every verb the application routes.
func RequestMethods() []string {
	methods := make([]string, 0, len(fiber.DefaultMethods)+len(ExtensionMethods))
	methods = append(methods, fiber.DefaultMethods...)
	return append(methods, ExtensionMethods...)
}

// AppConfig is the fiber configuration shared by the server and its tests.
func AppConfig(cfg config.Config) fiber.Config {
	return fiber.Config{
		AppName:        cfg.AppName,
		ServerHeader:   cfg.AppName,
		RequestMethods: RequestMethods(),
	}
}

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SubmissionHandler *handler.SubmissionHandler
	StorePinger       handler.StorePinger
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.StorePinger))

	app.Get(MetricsPath, observability.MetricsHandler())

	if deps.SubmissionHandler != nil {
		path := cfg.SubmissionsPath
		if path == "" {
			path = "/api/submissions"
		}
		deps.SubmissionHandler.Register(app.Group(path))
	}
}
