package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/utils"
)

const refreshCookie = "refreshToken"

// CookieConfig controls the refresh token cookie.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

func (cc CookieConfig) set(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(cc.TTL),
	})
}

func (cc CookieConfig) clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(-time.Hour),
	})
}

func parseBody(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return utils.NewBadRequest("Cannot parse JSON")
	}
	return nil
}

func pageParams(c *fiber.Ctx, defaultLimit int) utils.Page {
	return utils.ParsePage(c.Query("limit"), c.Query("offset"), defaultLimit)
}
