package routes

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"ivchonotes/cmd/internal/session"
	"ivchonotes/cmd/internal/utils/apierror"
)

// RequireSession gates data routes on session presence: the bearer token
// must match the current session and the session must not be expired.
func RequireSession(sessions *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			current := sessions.Current()
			if current == nil || current.AccessToken != token {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			if current.ExpiresAt <= time.Now().UTC().UnixMilli() {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
