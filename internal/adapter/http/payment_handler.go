package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	"lookman/internal/domain/payment"
	paymentuc "lookman/internal/usecase/payment"
)

type PaymentHandler struct {
	uc *paymentuc.Usecase
}

func NewPaymentHandler(uc *paymentuc.Usecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) List(c echo.Context) error {
	f := payment.ListFilter{
		PaymentDate:     c.QueryParam("payment_date"),
		PaymentDateFrom: c.QueryParam("payment_date_from"),
		PaymentDateTo:   c.QueryParam("payment_date_to"),
	}
	if v, err := strconv.ParseUint(c.QueryParam("loan_id"), 10, 32); err == nil {
		f.LoanID = uint(v)
	}

	pays, err := h.uc.List(c.Request().Context(), middleware.CurrentUser(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": pays})
}

type recordPaymentRequest struct {
	LoanID       uint     `json:"loan_id" validate:"required"`
	PaymentDate  string   `json:"payment_date" validate:"required,dateYMD"`
	ActualAmount *float64 `json:"actual_amount" validate:"required,gte=0"`
	PaymentDay   int      `json:"payment_day" validate:"required,gte=1"`
	Notes        string   `json:"notes"`
}

func (h *PaymentHandler) Record(c echo.Context) error {
	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	p, err := h.uc.Record(c.Request().Context(), middleware.CurrentUser(c), paymentuc.RecordInput{
		LoanID:       req.LoanID,
		PaymentDate:  req.PaymentDate,
		ActualAmount: req.ActualAmount,
		PaymentDay:   req.PaymentDay,
		Notes:        req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Payment recorded successfully",
		"payment": p,
	})
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := h.uc.Get(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payment": p})
}

type updatePaymentRequest struct {
	ActualAmount *float64 `json:"actual_amount" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	p, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), id, paymentuc.UpdateInput{
		ActualAmount: req.ActualAmount,
		Notes:        req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Payment updated successfully",
		"payment": p,
	})
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Payment deleted successfully"})
}

func (h *PaymentHandler) Today(c echo.Context) error {
	pays, summary, err := h.uc.Today(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"payments": pays,
		"summary":  summary,
	})
}

func (h *PaymentHandler) Overdue(c echo.Context) error {
	entries, err := h.uc.Overdue(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"overdue_payments": entries,
		"count":            len(entries),
	})
}
