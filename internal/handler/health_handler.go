package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/submission-gateway/internal/config"
	"github.com/noah-isme/submission-gateway/internal/utils"
)

// StorePinger checks that the store answers.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Store       string    `json:"store,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// HealthCheck returns a handler that reports application health information. With a
// pinger it also reports store reachability and answers 503 when the store is down.
func HealthCheck(cfg config.Config, store StorePinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		if store != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()

			if err := store.Ping(ctx); err != nil {
				payload.Status = "degraded"
				payload.Store = "down"
				return c.Status(fiber.StatusServiceUnavailable).JSON(utils.APIResponse{
					Success: false,
					Data:    payload,
					Message: "store unreachable",
				})
			}
			payload.Store = "up"
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
