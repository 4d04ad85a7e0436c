package middleware

import (
	"github.com/gofiber/fiber/v2"

	"qna_workspace/internal/authctx"
)

// RequireAuth rejects requests JWTViewer left anonymous. Routes that create
// or mutate content mount this; read-only routes do not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := authctx.UserIDFrom(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in required"})
		}
		return c.Next()
	}
}
