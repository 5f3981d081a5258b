package middleware

import "github.com/gofiber/fiber/v2"

// Cross-origin policy applied to every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
)

// CORS stamps the cross-origin headers before any handler runs so that error
// responses, 405s and preflights all carry them. Preflight short-circuiting is
// left to the endpoint, which answers OPTIONS with 200 and an empty body.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, AllowOrigin)
		c.Set(fiber.HeaderAccessControlAllowMethods, AllowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, AllowHeaders)
		return c.Next()
	}
}
