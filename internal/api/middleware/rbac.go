package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

// RBAC enforces role-based access control. The role is not embedded in the
// token; it is re-fetched from the credential store on every guarded request
// so a role change or account deletion takes effect immediately.
func RBAC(users ports.UserService, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(domain.Principal)
			if !ok || !principal.Authenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			user, err := users.GetByEmail(c.Request().Context(), principal.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown principal")
			}

			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
