package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/services"
)

type AuthController struct {
	Auth   *services.AuthService
	Cookie CookieConfig
}

// Register handles user registration
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := ac.Auth.Register(in); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful. Please check your email to verify your account.",
	})
}

func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	if err := ac.Auth.VerifyEmail(c.Query("token")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Email verified successfully"})
}

// Login handles user authentication and sets the refresh cookie
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	res, err := ac.Auth.Login(in)
	if err != nil {
		return err
	}
	ac.Cookie.set(c, res.RefreshToken)
	return c.JSON(res)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	ac.Cookie.clear(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	res, err := ac.Auth.Refresh(c.Cookies(refreshCookie))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (ac *AuthController) RequestPasswordReset(c *fiber.Ctx) error {
	var in services.ResetRequestInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	msg, err := ac.Auth.RequestPasswordReset(in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": msg})
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var in services.ResetConfirmInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := ac.Auth.ResetPassword(in); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password reset successful"})
}
