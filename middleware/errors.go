package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/utils"
	"github.com/sirupsen/logrus"
)

// ErrorHandler maps AppErrors to their status and hides everything else behind a 500.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := utils.AsAppError(err); ok {
			return c.Status(appErr.Status).JSON(appErr.Response())
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{Message: fiberErr.Message})
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{Message: "Server error"})
	}
}
