package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// Authorize checks the caller's role against the allowed set. An empty
// set allows any authenticated role. Denials carry no detail about
// which role would have been required.
func Authorize(role domain.Role, allowed ...domain.Role) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return apperrors.NewForbidden("insufficient permissions")
}

// RequireRole ensures the authenticated principal has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := Authorize(principal.Employee.Role, allowed...); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireAdmin restricts a route to admins.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// RequireManagerOrAdmin restricts a route to managers and admins.
func RequireManagerOrAdmin() fiber.Handler {
	return RequireRole(domain.RoleManager, domain.RoleAdmin)
}

// RequireAuthenticated ensures a principal is present, any role.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
