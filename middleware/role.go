package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
)

// RequireRoles rejects callers whose token role is not in roles. It must run after Protected.
func RequireRoles(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		if !allowed[Role(c)] {
			return utils.NewForbiddenError("Forbidden: insufficient role")
		}
		return c.Next()
	}
}
