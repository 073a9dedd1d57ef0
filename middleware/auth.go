// middleware/auth.go
package middleware

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 30 * 24 * time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ JWT_SECRET is not set — service cannot issue or verify tokens")
	}
	return []byte(secret)
}

// GenerateUserToken issues a signed HS256 token for a user session.
func GenerateUserToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": "user",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// UserAuthMiddleware validates the Bearer token and attaches user_id to the
// request context.
func UserAuthMiddleware() fiber.Handler {
	secret := jwtSecret()

	return func(c *fiber.Ctx) error {
		userID, role, err := parseToken(c, secret)
		if err != nil {
			log.Printf("🚫 [AUTH] %v for %s", err, c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "authentication required",
			})
		}
		if role != "user" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "user token required",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

func parseToken(c *fiber.Ctx, secret []byte) (userID, role string, err error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
	}

	raw := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "invalid claims")
	}
	sub, _ := claims["sub"].(string)
	r, _ := claims["role"].(string)
	if sub == "" {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "invalid subject")
	}
	return sub, r, nil
}
