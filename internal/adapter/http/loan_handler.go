package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	"lookman/internal/domain/loan"
	loanuc "lookman/internal/usecase/loan"
)

type LoanHandler struct {
	uc *loanuc.Usecase
}

func NewLoanHandler(uc *loanuc.Usecase) *LoanHandler {
	return &LoanHandler{uc: uc}
}

func (h *LoanHandler) List(c echo.Context) error {
	f := loan.ListFilter{
		Status:        loan.Status(c.QueryParam("status")),
		StartDateFrom: c.QueryParam("start_date_from"),
		StartDateTo:   c.QueryParam("start_date_to"),
	}
	if v, err := strconv.ParseUint(c.QueryParam("borrower_id"), 10, 32); err == nil {
		f.BorrowerID = uint(v)
	}
	if v, err := strconv.ParseUint(c.QueryParam("account_officer_id"), 10, 32); err == nil {
		f.AccountOfficerID = uint(v)
	}

	loans, err := h.uc.List(c.Request().Context(), middleware.CurrentUser(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}

type createLoanRequest struct {
	BorrowerID      uint     `json:"borrower_id" validate:"required"`
	PrincipalAmount float64  `json:"principal_amount" validate:"required,gt=0"`
	InterestRate    *float64 `json:"interest_rate" validate:"omitempty,gte=0"`
	Expenses        float64  `json:"expenses" validate:"gte=0"`
	DurationDays    *int     `json:"loan_duration_days" validate:"omitempty,gt=0"`
	StartDate       string   `json:"start_date" validate:"omitempty,dateYMD"`
}

func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	l, err := h.uc.Create(c.Request().Context(), middleware.CurrentUser(c), loanuc.CreateInput{
		BorrowerID:      req.BorrowerID,
		PrincipalAmount: req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		Expenses:        req.Expenses,
		DurationDays:    req.DurationDays,
		StartDate:       req.StartDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Loan created successfully",
		"loan":    l,
	})
}

// Get returns the loan with its repayment schedule and payment history, one
// request per detail view.
func (h *LoanHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	d, err := h.uc.GetDetail(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"loan":     d.Loan,
		"schedule": d.Schedule,
		"payments": d.Payments,
	})
}

type updateLoanRequest struct {
	PrincipalAmount *float64 `json:"principal_amount" validate:"omitempty,gt=0"`
	InterestRate    *float64 `json:"interest_rate" validate:"omitempty,gte=0"`
	Expenses        *float64 `json:"expenses" validate:"omitempty,gte=0"`
	DurationDays    *int     `json:"loan_duration_days" validate:"omitempty,gt=0"`
	StartDate       *string  `json:"start_date" validate:"omitempty,dateYMD"`
}

func (h *LoanHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req updateLoanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	l, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), id, loanuc.UpdateInput{
		PrincipalAmount: req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		Expenses:        req.Expenses,
		DurationDays:    req.DurationDays,
		StartDate:       req.StartDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Loan updated successfully",
		"loan":    l,
	})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	l, err := h.uc.UpdateStatus(c.Request().Context(), middleware.CurrentUser(c), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Loan status updated successfully",
		"loan":    l,
	})
}

func (h *LoanHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summarize(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"summary": s})
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	schedule, err := h.uc.Schedule(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": schedule})
}
