package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/controllers"
	"github.com/nourishnet/nourishnet-api/middleware"
)

// SetupAuthRoutes configures authentication and account routes
func SetupAuthRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	ac := &controllers.AuthController{Auth: d.Auth, Cookie: d.Cookie}
	uc := &controllers.UserController{Users: d.Users, Cookie: d.Cookie}
	limit := middleware.RateLimit("auth", d.Limits.Auth, d.Limits.Window, middleware.TooManyRequests, d.Storage)

	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", limit, ac.Register)
	auth.Get("/verify-email", ac.VerifyEmail)
	auth.Post("/login", limit, ac.Login)
	auth.Post("/logout", ac.Logout)
	auth.Post("/refresh-token", limit, ac.RefreshToken)
	auth.Post("/reset-password", limit, ac.RequestPasswordReset)
	auth.Post("/reset-password/confirm", limit, ac.ResetPassword)

	// Account routes
	users := auth.Group("/users", protected)
	users.Get("/profile", uc.GetProfile)
	users.Put("/profile", uc.UpdateProfile)
	users.Put("/preferences", uc.UpdatePreferences)
	users.Post("/avatar", uc.UploadAvatar)
	users.Delete("/account", uc.DeleteAccount)
}
