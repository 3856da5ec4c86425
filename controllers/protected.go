package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/middleware"
)

func Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "This is your profile", "user": middleware.Claims(c)})
}

func AdminOnly(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome, admin!", "user": middleware.Claims(c)})
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
