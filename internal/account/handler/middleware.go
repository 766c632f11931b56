package handler

import (
	"strings"

	"github.com/adminkit/account-service/internal/account/service"
	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// RequireAuth validates the bearer access token and stores the subject in
// the request locals.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		userID, err := h.tokenService.Verify(strings.TrimPrefix(authHeader, "Bearer "), service.TokenKindAccess)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		c.Locals(userIDKey, userID)

		return c.Next()
	}
}

// AuthenticatedUserID returns the subject stored by RequireAuth.
func AuthenticatedUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
