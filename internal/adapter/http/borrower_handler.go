package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	"lookman/internal/usecase/borrower"
)

type BorrowerHandler struct {
	uc *borrower.Usecase
}

func NewBorrowerHandler(uc *borrower.Usecase) *BorrowerHandler {
	return &BorrowerHandler{uc: uc}
}

func (h *BorrowerHandler) List(c echo.Context) error {
	borrowers, err := h.uc.List(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"borrowers": borrowers})
}

type borrowerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *BorrowerHandler) Create(c echo.Context) error {
	var req borrowerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	b, err := h.uc.Create(c.Request().Context(), middleware.CurrentUser(c), req.Name, req.Phone, req.Address)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":  "Borrower created successfully",
		"borrower": b,
	})
}

func (h *BorrowerHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	b, err := h.uc.Get(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"borrower": b})
}

func (h *BorrowerHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req borrowerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	b, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), id, req.Name, req.Phone, req.Address)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":  "Borrower updated successfully",
		"borrower": b,
	})
}

func (h *BorrowerHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Borrower deleted successfully"})
}

func (h *BorrowerHandler) Loans(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	loans, err := h.uc.Loans(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}
