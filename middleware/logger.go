package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/metrics"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one entry per request and records it in m.
func RequestLogger(log *logrus.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Let the error handler write the response so the logged status is final.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		route := c.Route().Path

		m.ObserveRequest(c.Method(), route, strconv.Itoa(status), latency.Seconds())
		log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": latency.String(),
			"ip":      c.IP(),
		}).Info("request")
		return nil
	}
}
