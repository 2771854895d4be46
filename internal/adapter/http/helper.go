package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lookman/internal/usecase/admin"
	"lookman/internal/usecase/auth"
	"lookman/internal/usecase/borrower"
	"lookman/internal/usecase/loan"
	"lookman/internal/usecase/payment"
	"lookman/internal/usecase/profile"
	"lookman/internal/usecase/report"
	"lookman/pkg/password"
)

var errBadID = errors.New("Invalid ID")

func paramID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		return 0, errBadID
	}
	return uint(n), nil
}

var notFoundErrs = []error{
	borrower.ErrNotFound,
	loan.ErrNotFound,
	loan.ErrBorrowerNotFound,
	payment.ErrNotFound,
	payment.ErrLoanNotFound,
	admin.ErrNotFound,
	report.ErrUserNotFound,
	profile.ErrProfileNotFound,
}

var forbiddenErrs = []error{
	auth.ErrAccountDisabled,
	borrower.ErrForbidden,
	loan.ErrForbidden,
	payment.ErrForbidden,
}

var badRequestErrs = []error{
	errBadID,
	auth.ErrWrongPassword,
	auth.ErrInvalidEmail,
	auth.ErrInvalidPhone,
	password.ErrFieldsRequired,
	password.ErrMismatch,
	password.ErrTooShort,
	password.ErrNeedsLetterAndDigit,
	borrower.ErrNameRequired,
	borrower.ErrNameTooShort,
	borrower.ErrHasActiveLoans,
	loan.ErrActiveLoanExists,
	loan.ErrInvalidPrincipal,
	loan.ErrInvalidStartDate,
	loan.ErrNotActive,
	loan.ErrInvalidStatus,
	payment.ErrLoanIDRequired,
	payment.ErrBadAmount,
	payment.ErrDateRequired,
	payment.ErrBadDate,
	payment.ErrBadDay,
	admin.ErrFieldsRequired,
	admin.ErrInvalidRole,
	admin.ErrUsernameTaken,
	admin.ErrSelfDelete,
	report.ErrBadDate,
	profile.ErrBadDate,
	profile.ErrDocumentFields,
	profile.ErrPurposeRequired,
	profile.ErrBadLoanAmount,
	profile.ErrBadLoanTerm,
}

// respondError maps usecase sentinel errors onto HTTP statuses so every
// handler answers with the same {"error": ...} shape.
func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.JSON(status, map[string]string{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	for _, e := range forbiddenErrs {
		if errors.Is(err, e) {
			return http.StatusForbidden
		}
	}
	for _, e := range notFoundErrs {
		if errors.Is(err, e) {
			return http.StatusNotFound
		}
	}
	for _, e := range badRequestErrs {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	var dup payment.ErrDuplicateDay
	if errors.As(err, &dup) {
		return http.StatusBadRequest
	}
	var hasLoans admin.ErrHasLoans
	if errors.As(err, &hasLoans) {
		return http.StatusBadRequest
	}
	log.Printf("http: internal error: %v", err)
	return http.StatusInternalServerError
}
