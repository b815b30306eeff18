package middleware

import (
	"crypto/subtle"
	"net/http"

	echo "github.com/labstack/echo/v4"
)

// AdminKeyMiddleware gates the admin surface behind the x-admin-key header.
// The provided value must exactly equal the configured secret; every mismatch
// (missing header, empty value, case variant) gets the same 401 body so the
// response never reveals which check failed. An empty configured secret
// disables the surface entirely.
func AdminKeyMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := c.Request().Header.Get("x-admin-key")
			if secret == "" ||
				subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}
