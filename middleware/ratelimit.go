package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/nourishnet/nourishnet-api/utils"
)

const (
	TooManyRequests = "Too many requests, please try again later."
	TooManyPayments = "Too many payment attempts, please try again later."
)

// RateLimit is a fixed-window, per-IP limiter. Counters live in storage when it is non-nil.
func RateLimit(name string, max int, window time.Duration, message string, storage fiber.Storage) fiber.Handler {
	cfg := limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.NewRateLimitError(message)
		},
		LimiterMiddleware: limiter.FixedWindow{},
	}
	if storage != nil {
		cfg.Storage = storage
	}
	return limiter.New(cfg)
}
