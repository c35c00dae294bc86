package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/repurposely/repurposely/internal/pkg/env"
)

// localsAuthUserID carries the bearer-token subject through the request.
const localsAuthUserID = "AUTH_USER_ID"

// BearerContextMiddleware validates an optional Supabase-signed access token
// and stores its subject in locals. Requests without a token pass through
// unchanged; token validation only runs when SUPABASE_JWT_SECRET is set.
func BearerContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := env.GetEnv("SUPABASE_JWT_SECRET", "")
		if secret == "" {
			return c.Next()
		}

		token := extractBearerToken(c)
		if token == "" {
			return c.Next()
		}

		claims := jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "invalid access token"})
		}

		c.Locals(localsAuthUserID, claims.Subject)
		return c.Next()
	}
}

// AuthenticatedUserID returns the verified token subject, or "" when the
// request carried no valid token.
func AuthenticatedUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localsAuthUserID).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
