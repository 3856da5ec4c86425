package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/controllers"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/models"
)

// SetupProviderRoutes mounts request intake and order management for providers.
func SetupProviderRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	pc := &controllers.ProviderController{Providers: d.Providers}
	limit := middleware.RateLimit("provider", d.Limits.Provider, d.Limits.Window, middleware.TooManyRequests, d.Storage)

	provider := app.Group("/provider", protected, middleware.RequireRoles(models.RoleProvider, models.RoleAdmin), limit)
	provider.Get("/requests", pc.AvailableRequests)
	provider.Get("/orders", pc.Orders)
	provider.Get("/stats", pc.Stats)
	provider.Post("/accept", pc.Accept)
	provider.Put("/order/status", pc.UpdateOrderStatus)
	provider.Post("/order/cancel", pc.CancelOrder)
}
