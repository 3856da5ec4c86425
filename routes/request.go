package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/controllers"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/models"
)

func SetupRequestRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	rc := &controllers.RequestController{Requests: d.Requests}
	recipient := middleware.RequireRoles(models.RoleRecipient, models.RoleAdmin)

	requests := app.Group("/requests", protected)
	requests.Post("/", recipient, rc.Create)
	requests.Get("/", rc.List)
	requests.Post("/feedback", recipient, rc.Feedback)
}
