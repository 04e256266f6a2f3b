package middleware

import (
	"context"
	"strings"

	"pcstore/internal/apperr"
	"pcstore/internal/auth"
	"pcstore/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Authenticate resolves the Authorization header to a caller and stores it in
// the request's user context. Requests without the header pass through as
// anonymous; a malformed or invalid token is rejected with 401. Any other
// failure while resolving the caller, such as the user store being down, is a
// 500.
func Authenticate(authenticator Authenticator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		// Expected format: "Bearer <token>" ("JWT <token>" is accepted too)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "JWT") || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authenticator.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			if apperr.KindOf(err) != apperr.KindUnauthenticated {
				logger.Error("failed to resolve caller", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Failed to authenticate request",
				})
			}
			logger.Debug("JWT validation failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.SetUserContext(auth.WithUser(c.UserContext(), user))
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}
