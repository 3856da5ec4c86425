package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/services"
)

type ProviderController struct {
	Providers *services.ProviderService
}

func (pc *ProviderController) AvailableRequests(c *fiber.Ctx) error {
	page := pageParams(c, 20)
	rows, total, err := pc.Providers.AvailableRequests(page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"requests": rows, "total": total, "limit": page.Limit, "offset": page.Offset})
}

func (pc *ProviderController) Orders(c *fiber.Ctx) error {
	page := pageParams(c, 20)
	rows, total, err := pc.Providers.Orders(middleware.UserID(c), c.Query("status"), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": rows, "total": total, "limit": page.Limit, "offset": page.Offset})
}

func (pc *ProviderController) Stats(c *fiber.Ctx) error {
	stats, err := pc.Providers.Stats(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (pc *ProviderController) Accept(c *fiber.Ctx) error {
	var in services.AcceptInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	order, err := pc.Providers.Accept(middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Request accepted successfully", "order": order})
}

func (pc *ProviderController) UpdateOrderStatus(c *fiber.Ctx) error {
	var in services.StatusInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	order, err := pc.Providers.UpdateStatus(middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order status updated successfully", "order": order})
}

func (pc *ProviderController) CancelOrder(c *fiber.Ctx) error {
	var in services.CancelInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := pc.Providers.Cancel(middleware.UserID(c), in); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order cancelled successfully"})
}
