package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neuronet-health/neuronet/pkg/roles"
)

// RBAC enforces role-based access control on API routes. Unlike the client
// guard, which corrects a misrouted visitor by redirecting to their own
// dashboard, the API answers a role mismatch with a plain 403.
func RBAC(allowedRoles ...roles.Role) echo.MiddlewareFunc {
	allowed := make(map[roles.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[roles.Normalize(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}
