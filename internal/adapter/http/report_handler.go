package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	"lookman/internal/usecase/report"
)

type ReportHandler struct {
	uc *report.Usecase
}

func NewReportHandler(uc *report.Usecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) DailyCollections(c echo.Context) error {
	rep, err := h.uc.DailyCollections(c.Request().Context(), middleware.CurrentUser(c), c.QueryParam("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ReportHandler) OutstandingLoans(c echo.Context) error {
	rep, err := h.uc.OutstandingLoans(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ReportHandler) ProfitLoss(c echo.Context) error {
	rep, err := h.uc.ProfitLoss(c.Request().Context(), c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ReportHandler) Performance(c echo.Context) error {
	var userID uint
	if v, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32); err == nil {
		userID = uint(v)
	}
	rep, err := h.uc.Performance(c.Request().Context(), middleware.CurrentUser(c),
		c.QueryParam("start_date"), c.QueryParam("end_date"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ReportHandler) Dashboard(c echo.Context) error {
	stats, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
