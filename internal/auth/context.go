package auth

import "github.com/labstack/echo/v4"

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// GetUserID returns the staff user id placed on the request context by the
// auth middleware, or "" when the request is unauthenticated.
func GetUserID(c echo.Context) string {
	if v, ok := c.Get(UserIDKey).(string); ok {
		return v
	}
	return ""
}

func GetRole(c echo.Context) string {
	if v, ok := c.Get(RoleKey).(string); ok {
		return v
	}
	return ""
}
