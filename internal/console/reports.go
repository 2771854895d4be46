package console

import (
	"errors"
	"time"

	"lookman/internal/usecase/report"
)

// Report types the console can render. "none" is the initial state; generate
// is a warning no-op until a type is chosen.
const (
	ReportNone             = ""
	ReportDailyCollections = "daily-collections"
	ReportOutstandingLoans = "outstanding-loans"
	ReportProfitLoss       = "profit-loss"
	ReportPerformance      = "performance"
)

var ErrNoReportSelected = errors.New("Please select a report type first")

var validReportTypes = map[string]bool{
	ReportDailyCollections: true,
	ReportOutstandingLoans: true,
	ReportProfitLoss:       true,
	ReportPerformance:      true,
}

// ReportState is the reports view: the chosen type, the date range and the
// optional officer narrowing.
type ReportState struct {
	Type      string
	StartDate string
	EndDate   string
	UserID    uint
}

// SelectReport switches the report type and defaults the range to the
// current calendar month.
func SelectReport(reportType string, now time.Time) (ReportState, error) {
	if !validReportTypes[reportType] {
		return ReportState{}, ErrNoReportSelected
	}
	start, end := report.CurrentMonth(now)
	return ReportState{Type: reportType, StartDate: start, EndDate: end}, nil
}

// ShowOfficerFilter reports whether the officer dropdown applies; only the
// performance report narrows by user.
func (rs ReportState) ShowOfficerFilter() bool {
	return rs.Type == ReportPerformance
}

// Validate checks the state before a generate request is dispatched.
func (rs ReportState) Validate() error {
	if !validReportTypes[rs.Type] {
		return ErrNoReportSelected
	}
	return nil
}
