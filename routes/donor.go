package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/controllers"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/models"
)

// SetupDonorRoutes mounts the donor dashboard. Every route needs the donor or admin role.
func SetupDonorRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	dc := &controllers.DonorController{Donors: d.Donors}
	donorLimit := middleware.RateLimit("donor", d.Limits.Donor, d.Limits.Window, middleware.TooManyRequests, d.Storage)
	paymentLimit := middleware.RateLimit("payment", d.Limits.Payment, d.Limits.Window, middleware.TooManyPayments, d.Storage)

	donor := app.Group("/donor", protected, middleware.RequireRoles(models.RoleDonor, models.RoleAdmin))
	donor.Get("/stats", donorLimit, dc.Stats)
	donor.Get("/transactions", donorLimit, dc.Transactions)
	donor.Get("/deliveries", donorLimit, dc.Deliveries)
	donor.Get("/feedback", donorLimit, dc.Feedback)
	donor.Get("/balance", donorLimit, dc.Balance)
	donor.Post("/donate", donorLimit, paymentLimit, dc.Donate)
}
