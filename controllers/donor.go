package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/services"
)

type DonorController struct {
	Donors *services.DonorService
}

func (dc *DonorController) Stats(c *fiber.Ctx) error {
	stats, err := dc.Donors.Stats(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (dc *DonorController) Transactions(c *fiber.Ctx) error {
	page := pageParams(c, 20)
	rows, total, err := dc.Donors.Transactions(middleware.UserID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"transactions": rows, "total": total, "limit": page.Limit, "offset": page.Offset})
}

func (dc *DonorController) Deliveries(c *fiber.Ctx) error {
	page := pageParams(c, 20)
	rows, total, err := dc.Donors.Deliveries(middleware.UserID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deliveries": rows, "total": total, "limit": page.Limit, "offset": page.Offset})
}

func (dc *DonorController) Feedback(c *fiber.Ctx) error {
	page := pageParams(c, 10)
	rows, err := dc.Donors.Feedback(middleware.UserID(c), page.Limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"feedback": rows})
}

func (dc *DonorController) Balance(c *fiber.Ctx) error {
	balance, err := dc.Donors.Balance(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"balance": balance})
}

// Donate processes a simulated payment
func (dc *DonorController) Donate(c *fiber.Ctx) error {
	var in services.DonateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	res, err := dc.Donors.Donate(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Donation successful",
		"transaction":    res.Transaction,
		"paymentDetails": res.PaymentDetails,
	})
}
