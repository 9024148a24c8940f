package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkelabs/user-management-api/internal/api/middleware"
)

// ctxUserID extracts the caller's user id injected by the Auth or
// RefreshGuard middleware. Presence proves the middleware ran; its absence
// on a protected route means the route was wired wrong, so reject rather
// than proceed with an anonymous caller.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
