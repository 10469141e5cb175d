package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chatop/rental-api/internal/api/middleware"
	"github.com/chatop/rental-api/internal/core/domain"
)

// currentPrincipal extracts the principal installed by the auth middleware.
// Its presence proves the gate ran; a protected handler reached without one
// is a routing mistake and is rejected with 401 rather than served.
func currentPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || !principal.Authenticated {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return principal, nil
}
