package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	"lookman/internal/usecase/admin"
)

type AdminHandler struct {
	uc *admin.Usecase
}

func NewAdminHandler(uc *admin.Usecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=admin account_officer"`
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	usr, err := h.uc.CreateUser(c.Request().Context(), admin.CreateInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    usr,
	})
}

type updateUserRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin account_officer"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	usr, err := h.uc.UpdateUser(c.Request().Context(), id, admin.UpdateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: req.IsActive,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    usr,
	})
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteUser(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
