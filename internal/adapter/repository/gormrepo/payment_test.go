package gormrepo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
)

func seedPayments(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	loans := NewLoanRepository(db)
	pays := NewPaymentRepository(db)

	l1 := makeLoan(1, 2, loan.StatusActive)
	l2 := makeLoan(3, 4, loan.StatusActive)
	for _, l := range []*loan.Loan{l1, l2} {
		if err := loans.Create(ctx, l); err != nil {
			t.Fatalf("create loan: %v", err)
		}
	}
	for _, p := range []*payment.Payment{
		{LoanID: l1.ID, PaymentDate: "2026-01-05", ExpectedAmount: 70, ActualAmount: 70, PaymentDay: 1, RecordedBy: 2},
		{LoanID: l1.ID, PaymentDate: "2026-01-06", ExpectedAmount: 70, ActualAmount: 30, PaymentDay: 2, RecordedBy: 2},
		{LoanID: l2.ID, PaymentDate: "2026-01-06", ExpectedAmount: 70, ActualAmount: 70, PaymentDay: 1, RecordedBy: 4},
	} {
		if err := pays.Create(ctx, p); err != nil {
			t.Fatalf("create payment: %v", err)
		}
	}
	return l1.ID, l2.ID
}

func TestPaymentRepository_Filters(t *testing.T) {
	db := openTestDB(t)
	l1, _ := seedPayments(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	got, err := repo.List(ctx, payment.ListFilter{LoanID: l1})
	if err != nil || len(got) != 2 {
		t.Errorf("loan filter: %d payments, err %v; want 2", len(got), err)
	}
	got, err = repo.List(ctx, payment.ListFilter{PaymentDate: "2026-01-06"})
	if err != nil || len(got) != 2 {
		t.Errorf("date filter: %d payments, err %v; want 2", len(got), err)
	}
	got, err = repo.List(ctx, payment.ListFilter{AccountOfficerID: 4})
	if err != nil || len(got) != 1 {
		t.Errorf("officer filter: %d payments, err %v; want 1", len(got), err)
	}
	got, err = repo.List(ctx, payment.ListFilter{PaymentDateFrom: "2026-01-06", PaymentDateTo: "2026-01-31"})
	if err != nil || len(got) != 2 {
		t.Errorf("range filter: %d payments, err %v; want 2", len(got), err)
	}
}

func TestPaymentRepository_Sums(t *testing.T) {
	db := openTestDB(t)
	l1, _ := seedPayments(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	total, err := repo.SumActualByLoanID(ctx, l1)
	if err != nil || total != 100 {
		t.Errorf("SumActualByLoanID = %v, err %v; want 100", total, err)
	}
	total, err = repo.SumActual(ctx, payment.ListFilter{})
	if err != nil || total != 170 {
		t.Errorf("SumActual(all) = %v, err %v; want 170", total, err)
	}
	total, err = repo.SumActual(ctx, payment.ListFilter{PaymentDate: "2026-01-05"})
	if err != nil || total != 70 {
		t.Errorf("SumActual(date) = %v, err %v; want 70", total, err)
	}
	total, err = repo.SumActual(ctx, payment.ListFilter{AccountOfficerID: 2})
	if err != nil || total != 100 {
		t.Errorf("SumActual(officer) = %v, err %v; want 100", total, err)
	}

	// Empty result sums to zero, not NULL.
	total, err = repo.SumActualByLoanID(ctx, 999)
	if err != nil || total != 0 {
		t.Errorf("SumActualByLoanID(empty) = %v, err %v; want 0", total, err)
	}
}

func TestPaymentRepository_GetByLoanAndDay(t *testing.T) {
	db := openTestDB(t)
	l1, _ := seedPayments(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p, err := repo.GetByLoanAndDay(ctx, l1, 2)
	if err != nil {
		t.Fatalf("GetByLoanAndDay: %v", err)
	}
	if p.ActualAmount != 30 {
		t.Errorf("ActualAmount = %v, want 30", p.ActualAmount)
	}
	if _, err := repo.GetByLoanAndDay(ctx, l1, 9); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing day: err = %v, want ErrRecordNotFound", err)
	}
}
