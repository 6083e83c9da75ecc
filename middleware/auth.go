package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Rejoice2374/Homely-API/session"
)

// Auth resolves the Bearer token to a user via the session manager and stores
// the user and the raw token on the request context.
func Auth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Authorization header is required",
				})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid authorization header format",
				})
			}

			tokenString := tokenParts[1]
			user, err := sessions.Verify(c.Request().Context(), tokenString)
			if err != nil {
				if errors.Is(err, session.ErrUnknownSubject) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"error": "User not found",
					})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid token",
				})
			}

			c.Set("user", user)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}
