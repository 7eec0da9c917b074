package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the auth middleware. On
// routes behind OptionalAuth both values are empty for guests; handlers use
// ok to decide whether a history record should be enqueued.
func ctxIdentity(c echo.Context) (username, userID string, ok bool) {
	username, _ = c.Get("username").(string)
	userID, _ = c.Get("user_id").(string)
	return username, userID, username != "" && userID != ""
}

// ctxUsername extracts the username on routes behind the required auth
// middleware and fast-fails when the claim is structurally missing.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
