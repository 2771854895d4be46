package gormrepo

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/profile"
	"lookman/internal/domain/user"
)

// openTestDB creates an in-memory sqlite DB with the full schema. The domain
// models use plain string columns, so they migrate cleanly on sqlite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&user.User{},
		&borrower.Borrower{},
		&loan.Loan{},
		&payment.Payment{},
		&profile.BorrowerProfile{},
		&profile.Document{},
		&profile.LoanApplication{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(borrowerID, officerID uint, status loan.Status) *loan.Loan {
	return &loan.Loan{
		BorrowerID:       borrowerID,
		AccountOfficerID: officerID,
		PrincipalAmount:  1000,
		InterestRate:     10,
		InterestAmount:   100,
		TotalAmount:      1100,
		DailyRepayment:   1100.0 / 15,
		LoanDurationDays: 15,
		StartDate:        "2026-01-05",
		ExpectedEndDate:  "2026-01-19",
		Status:           status,
	}
}
