package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finderapp/finder-service/internal/domain"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// RequireAuthenticated ensures the session gate stored verified claims.
// API handlers behind it can assume ClaimsFromContext succeeds.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ClaimsFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAuthority ensures the caller holds an authority-role session.
func RequireAuthority() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if claims.Role != domain.RoleAuthority {
			return apperrors.NewForbidden("authority role required")
		}
		return c.Next()
	}
}
