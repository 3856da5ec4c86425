package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/controllers"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/models"
)

func SetupProtectedRoutes(app *fiber.App, protected fiber.Handler) {
	p := app.Group("/protected", protected)
	p.Get("/me", controllers.Me)
	p.Get("/admin-only", middleware.RequireRoles(models.RoleAdmin), controllers.AdminOnly)
}
