package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lookman/internal/domain/user"
	"lookman/internal/usecase/auth"
)

// CookieName is the session cookie shared by the API and the console.
const CookieName = "session_token"

const userKey = "current_user"

// SessionAuth resolves the session cookie to a user and stores it in the
// request context. Requests without a valid session get a 401.
func SessionAuth(uc *auth.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(CookieName); err == nil {
				token = cookie.Value
			}
			usr, err := uc.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			}
			c.Set(userKey, usr)
			return next(c)
		}
	}
}

// AdminRequired allows only admins past; it assumes SessionAuth ran first.
func AdminRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		usr := CurrentUser(c)
		if usr == nil || !usr.IsAdmin() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Admin access required"})
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user set by SessionAuth, or nil.
func CurrentUser(c echo.Context) *user.User {
	usr, _ := c.Get(userKey).(*user.User)
	return usr
}

// SetCurrentUser injects a user directly, for handler tests.
func SetCurrentUser(c echo.Context, usr *user.User) {
	c.Set(userKey, usr)
}
