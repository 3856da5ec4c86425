package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/services"
)

type RequestController struct {
	Requests *services.RequestService
}

func (rc *RequestController) Create(c *fiber.Ctx) error {
	var in services.CreateRequestInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	req, err := rc.Requests.Create(middleware.UserID(c), middleware.Role(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Request created", "data": req})
}

func (rc *RequestController) List(c *fiber.Ctx) error {
	page := pageParams(c, 20)
	rows, total, err := rc.Requests.ListByUser(middleware.UserID(c), middleware.Role(c), c.Query("userId"), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"requests": rows, "total": total, "limit": page.Limit, "offset": page.Offset})
}

func (rc *RequestController) Feedback(c *fiber.Ctx) error {
	var in services.FeedbackInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	fb, err := rc.Requests.SubmitFeedback(middleware.UserID(c), middleware.Role(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Feedback submitted", "feedback": fb})
}
