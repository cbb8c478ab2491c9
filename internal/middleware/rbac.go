package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Scope granted to the trust scorer for posting recomputed scores.
const ScopeTrustWrite = "trust:write"

func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return Unauthorized("Missing token claims")
		}

		if !claims.HasScope(scope) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
