package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/KyryloKozlovskyi/transaction-website/internal/auth"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// RequireAdmin verifies the bearer token and rejects non-admin
// principals. Handlers downstream read the principal via Principal(c).
func RequireAdmin(verifier auth.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "No authentication token provided")
			}

			token := strings.TrimPrefix(header, "Bearer ")
			principal, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			if !principal.Admin {
				log.Printf("non-admin access attempt: %s", principal.Email)
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admin privileges required.")
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// Principal returns the authenticated principal set by RequireAdmin,
// or nil on unprotected routes.
func Principal(c echo.Context) *auth.Principal {
	p, _ := c.Get(principalKey).(*auth.Principal)
	return p
}
