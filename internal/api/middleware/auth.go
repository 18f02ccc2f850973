package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
)

// UserKey is the context key holding the authenticated *domain.User.
const UserKey = "user"

const bearerPrefix = "Bearer "

var (
	errMissingHeader = echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
	errBadPrefix     = echo.NewHTTPError(http.StatusUnauthorized, `Authorization header must start with "Bearer"`)
)

// Auth verifies the bearer token and stores the embedded user in the context.
// It establishes identity only; there are no role checks.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return errMissingHeader
			}
			if !strings.HasPrefix(header, bearerPrefix) {
				return errBadPrefix
			}

			token := strings.TrimSpace(header[len(bearerPrefix):])
			user, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error()).SetInternal(err)
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(UserKey).(*domain.User)
	return u
}
