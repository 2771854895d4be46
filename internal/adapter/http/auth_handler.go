package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	"lookman/internal/usecase/auth"
	"lookman/pkg/password"
)

type AuthHandler struct {
	uc  *auth.Usecase
	ttl time.Duration
}

func NewAuthHandler(uc *auth.Usecase, ttl time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, ttl: ttl}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	usr, token, err := h.uc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	c.SetCookie(h.sessionCookie(token, h.ttl))
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Login successful",
		"user":        usr,
		"first_login": usr.IsFirstLogin,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil {
		if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
			return respondError(c, err)
		}
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) CheckAuth(c echo.Context) error {
	usr := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          usr,
		"first_login":   usr.IsFirstLogin,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	usr := middleware.CurrentUser(c)
	if err := h.uc.ChangePassword(c.Request().Context(), usr, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"user": middleware.CurrentUser(c)})
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	usr := middleware.CurrentUser(c)
	if err := h.uc.UpdateProfile(c.Request().Context(), usr, req.FullName, req.Email, req.Phone); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    usr,
	})
}

type passwordStrengthRequest struct {
	Password string `json:"password"`
}

// PasswordStrength scores a candidate password so the console can render the
// meter without duplicating the heuristic in the browser.
func (h *AuthHandler) PasswordStrength(c echo.Context) error {
	var req passwordStrengthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	s := password.CheckStrength(req.Password)
	return c.JSON(http.StatusOK, map[string]any{
		"score":   s.Score,
		"level":   s.Level,
		"missing": s.Missing,
		"message": s.Message(),
	})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
