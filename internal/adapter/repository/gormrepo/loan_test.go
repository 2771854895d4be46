package gormrepo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"lookman/internal/domain/loan"
	"lookman/internal/domain/uow"
)

func TestLoanRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(1, 2, loan.StatusActive)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("ID not assigned")
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.TotalAmount != 1100 || got.StartDate != "2026-01-05" {
		t.Errorf("loan = %+v", got)
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing loan: err = %v, want ErrRecordNotFound", err)
	}
}

func TestLoanRepository_ListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	for _, l := range []*loan.Loan{
		makeLoan(1, 2, loan.StatusActive),
		makeLoan(1, 2, loan.StatusCompleted),
		makeLoan(3, 4, loan.StatusOverdue),
	} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx, loan.ListFilter{Status: loan.StatusActive})
	if err != nil || len(got) != 1 {
		t.Errorf("status filter: %d loans, err %v; want 1", len(got), err)
	}
	got, err = repo.List(ctx, loan.ListFilter{AccountOfficerID: 2})
	if err != nil || len(got) != 2 {
		t.Errorf("officer filter: %d loans, err %v; want 2", len(got), err)
	}
	got, err = repo.List(ctx, loan.ListFilter{Statuses: []loan.Status{loan.StatusActive, loan.StatusOverdue}})
	if err != nil || len(got) != 2 {
		t.Errorf("statuses filter: %d loans, err %v; want 2", len(got), err)
	}
	got, err = repo.List(ctx, loan.ListFilter{BorrowerID: 3})
	if err != nil || len(got) != 1 {
		t.Errorf("borrower filter: %d loans, err %v; want 1", len(got), err)
	}

	n, err := repo.CountActiveByBorrowerID(ctx, 1)
	if err != nil || n != 1 {
		t.Errorf("CountActiveByBorrowerID = %d, err %v; want 1", n, err)
	}
	n, err = repo.CountByOfficerID(ctx, 4)
	if err != nil || n != 1 {
		t.Errorf("CountByOfficerID = %d, err %v; want 1", n, err)
	}
	n, err = repo.CountByStatus(ctx, loan.StatusCompleted)
	if err != nil || n != 1 {
		t.Errorf("CountByStatus = %d, err %v; want 1", n, err)
	}

	total, err := repo.SumPrincipal(ctx)
	if err != nil || total != 3000 {
		t.Errorf("SumPrincipal = %v, err %v; want 3000", total, err)
	}
}

func TestLoanRepository_StartDateRange(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	jan := makeLoan(1, 2, loan.StatusActive)
	feb := makeLoan(3, 2, loan.StatusActive)
	feb.StartDate = "2026-02-10"
	for _, l := range []*loan.Loan{jan, feb} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx, loan.ListFilter{StartDateFrom: "2026-02-01", StartDateTo: "2026-02-28"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].StartDate != "2026-02-10" {
		t.Errorf("range filter returned %d loans", len(got))
	}
}

func TestGormUoW_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	tx := NewGormUoW(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, makeLoan(1, 2, loan.StatusActive)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx err = %v, want boom", err)
	}

	n, err := NewLoanRepository(db).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("loan count after rollback = %d, want 0", n)
	}
}
