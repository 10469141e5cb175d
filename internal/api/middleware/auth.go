package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chatop/rental-api/internal/api/metrics"
	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

// PrincipalKey is the echo context key under which the auth middleware
// stores the authenticated domain.Principal.
const PrincipalKey = "principal"

// Auth is the request gate: it extracts the bearer token, verifies it, and
// installs the authenticated principal into the request context. The gate is
// fail-closed: any missing, malformed, tampered or expired token terminates
// the request with 401 and the handler is never invoked. Routes that must
// stay reachable without a token (login, registration, health) are simply
// registered outside the group this middleware wraps.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := codec.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()

			c.Set(PrincipalKey, domain.Principal{Subject: subject, Authenticated: true})
			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
