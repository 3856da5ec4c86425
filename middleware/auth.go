package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
)

const (
	LocalUserID = "userID"
	LocalRole   = "role"
	LocalClaims = "claims"
)

// Protected verifies the bearer access token and stores its user id, role and claims in locals.
func Protected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   secret,
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.NewForbiddenError("Invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.NewForbiddenError("Invalid token claims")
			}

			userID, err := utils.ClaimString(claims, "userId")
			if err != nil {
				return utils.NewForbiddenError("Invalid user ID in token")
			}
			role, err := utils.ClaimString(claims, "role")
			if err != nil {
				return utils.NewForbiddenError("Invalid role in token")
			}

			c.Locals(LocalUserID, userID)
			c.Locals(LocalRole, models.Role(role))
			c.Locals(LocalClaims, claims)
			return c.Next()
		},
	})
}

// jwtError answers 401 for a missing header and 403 for a token that fails verification.
func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "missing or malformed JWT") {
		return utils.NewAuthError("No token provided")
	}
	return utils.NewForbiddenError("Invalid or expired token")
}

// UserID returns the authenticated user's id.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// Role returns the authenticated user's role.
func Role(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(LocalRole).(models.Role)
	return role
}

// Claims returns the decoded access token claims.
func Claims(c *fiber.Ctx) jwt.MapClaims {
	claims, _ := c.Locals(LocalClaims).(jwt.MapClaims)
	return claims
}
