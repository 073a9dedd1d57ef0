// middleware/admin.go
package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAdminToken issues a signed HS256 token for an admin session.
func GenerateAdminToken(adminID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  adminID,
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// AdminAuthMiddleware validates the Bearer token and requires the admin role.
func AdminAuthMiddleware() fiber.Handler {
	secret := jwtSecret()

	return func(c *fiber.Ctx) error {
		adminID, role, err := parseToken(c, secret)
		if err != nil {
			log.Printf("🚫 [ADMIN_AUTH] %v for %s", err, c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "authentication required",
			})
		}
		if role != "admin" {
			log.Printf("❌ [ADMIN_AUTH] non-admin token used on %s", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "admin access required",
			})
		}

		c.Locals("admin_id", adminID)
		return c.Next()
	}
}
