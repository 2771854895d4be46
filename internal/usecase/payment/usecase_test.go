package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/uow"
	"lookman/internal/domain/user"
)

type mockPaymentRepo struct {
	CreateFn            func(ctx context.Context, p *payment.Payment) error
	GetByIDFn           func(ctx context.Context, id uint) (*payment.Payment, error)
	ListFn              func(ctx context.Context, f payment.ListFilter) ([]payment.Payment, error)
	GetByLoanAndDayFn   func(ctx context.Context, loanID uint, day int) (*payment.Payment, error)
	SumActualByLoanIDFn func(ctx context.Context, loanID uint) (float64, error)
	SaveFn              func(ctx context.Context, p *payment.Payment) error
	DeleteFn            func(ctx context.Context, id uint) error
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	return m.CreateFn(ctx, p)
}
func (m *mockPaymentRepo) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockPaymentRepo) List(ctx context.Context, f payment.ListFilter) ([]payment.Payment, error) {
	return m.ListFn(ctx, f)
}
func (m *mockPaymentRepo) GetByLoanAndDay(ctx context.Context, loanID uint, day int) (*payment.Payment, error) {
	return m.GetByLoanAndDayFn(ctx, loanID, day)
}
func (m *mockPaymentRepo) SumActualByLoanID(ctx context.Context, loanID uint) (float64, error) {
	return m.SumActualByLoanIDFn(ctx, loanID)
}
func (m *mockPaymentRepo) SumActual(context.Context, payment.ListFilter) (float64, error) {
	panic("not used")
}
func (m *mockPaymentRepo) Save(ctx context.Context, p *payment.Payment) error {
	return m.SaveFn(ctx, p)
}
func (m *mockPaymentRepo) Delete(ctx context.Context, id uint) error { return m.DeleteFn(ctx, id) }

type mockLoanRepo struct {
	GetByIDFn func(ctx context.Context, id uint) (*loan.Loan, error)
	ListFn    func(ctx context.Context, f loan.ListFilter) ([]loan.Loan, error)
	SaveFn    func(ctx context.Context, l *loan.Loan) error
}

func (m *mockLoanRepo) Create(context.Context, *loan.Loan) error { panic("not used") }
func (m *mockLoanRepo) GetByID(ctx context.Context, id uint) (*loan.Loan, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockLoanRepo) List(ctx context.Context, f loan.ListFilter) ([]loan.Loan, error) {
	return m.ListFn(ctx, f)
}
func (m *mockLoanRepo) GetActiveByBorrowerID(context.Context, uint) (*loan.Loan, error) {
	panic("not used")
}
func (m *mockLoanRepo) CountActiveByBorrowerID(context.Context, uint) (int64, error) {
	panic("not used")
}
func (m *mockLoanRepo) CountByOfficerID(context.Context, uint) (int64, error)     { panic("not used") }
func (m *mockLoanRepo) CountByStatus(context.Context, loan.Status) (int64, error) { panic("not used") }
func (m *mockLoanRepo) Save(ctx context.Context, l *loan.Loan) error              { return m.SaveFn(ctx, l) }
func (m *mockLoanRepo) Count(context.Context) (int64, error)                      { panic("not used") }
func (m *mockLoanRepo) SumPrincipal(context.Context) (float64, error)             { panic("not used") }

type mockBorrowerRepo struct {
	GetByIDFn func(ctx context.Context, id uint) (*borrower.Borrower, error)
}

func (m *mockBorrowerRepo) Create(context.Context, *borrower.Borrower) error { panic("not used") }
func (m *mockBorrowerRepo) GetByID(ctx context.Context, id uint) (*borrower.Borrower, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockBorrowerRepo) List(context.Context) ([]borrower.Borrower, error) { panic("not used") }
func (m *mockBorrowerRepo) ListByCreator(context.Context, uint) ([]borrower.Borrower, error) {
	panic("not used")
}
func (m *mockBorrowerRepo) Save(context.Context, *borrower.Borrower) error { panic("not used") }
func (m *mockBorrowerRepo) Delete(context.Context, uint) error             { panic("not used") }
func (m *mockBorrowerRepo) Count(context.Context) (int64, error)           { panic("not used") }

type fakeUow struct{ repos uow.Repos }

func (f *fakeUow) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(f.repos)
}

var officer = &user.User{ID: 2, Role: user.RoleAccountOfficer, IsActive: true}

func amount(v float64) *float64 { return &v }

func activeLoanFixture() *loan.Loan {
	return &loan.Loan{
		ID: 1, AccountOfficerID: officer.ID, Status: loan.StatusActive,
		TotalAmount: 300, DailyRepayment: 100, LoanDurationDays: 3,
		StartDate: "2026-01-05", ExpectedEndDate: "2026-01-07",
	}
}

func newTestUsecase(pays *mockPaymentRepo, loans *mockLoanRepo, borrowers *mockBorrowerRepo) *Usecase {
	tx := &fakeUow{repos: uow.Repos{Payments: pays, Loans: loans, Borrowers: borrowers}}
	return New(pays, loans, borrowers, tx)
}

func TestRecord(t *testing.T) {
	stored := activeLoanFixture()
	var savedLoan *loan.Loan
	loans := &mockLoanRepo{
		GetByIDFn: func(context.Context, uint) (*loan.Loan, error) { cp := *stored; return &cp, nil },
		SaveFn:    func(_ context.Context, l *loan.Loan) error { savedLoan = l; return nil },
	}
	var created *payment.Payment
	pays := &mockPaymentRepo{
		GetByLoanAndDayFn: func(context.Context, uint, int) (*payment.Payment, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, p *payment.Payment) error {
			p.ID = 9
			created = p
			return nil
		},
		SumActualByLoanIDFn: func(context.Context, uint) (float64, error) { return 100, nil },
	}
	uc := newTestUsecase(pays, loans, &mockBorrowerRepo{})

	p, err := uc.Record(context.Background(), officer, RecordInput{
		LoanID:       1,
		PaymentDate:  "2026-01-10", // a Saturday
		ActualAmount: amount(100),
		PaymentDay:   1,
		Notes:        "  cash  ",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if created == nil {
		t.Fatal("payment not persisted")
	}
	if p.ExpectedAmount != 100 {
		t.Errorf("ExpectedAmount = %v, want the daily repayment 100", p.ExpectedAmount)
	}
	if !p.IsWeekendAdjusted {
		t.Error("Saturday payment not flagged weekend-adjusted")
	}
	if p.Notes != "cash" {
		t.Errorf("Notes = %q, want trimmed", p.Notes)
	}
	if p.RecordedBy != officer.ID {
		t.Errorf("RecordedBy = %d, want %d", p.RecordedBy, officer.ID)
	}
	if savedLoan == nil {
		t.Fatal("loan status not rederived")
	}
}

func TestRecord_DuplicateDay(t *testing.T) {
	loans := &mockLoanRepo{
		GetByIDFn: func(context.Context, uint) (*loan.Loan, error) { return activeLoanFixture(), nil },
	}
	pays := &mockPaymentRepo{
		GetByLoanAndDayFn: func(context.Context, uint, int) (*payment.Payment, error) {
			return &payment.Payment{ID: 1, PaymentDay: 3}, nil
		},
	}
	uc := newTestUsecase(pays, loans, &mockBorrowerRepo{})

	_, err := uc.Record(context.Background(), officer, RecordInput{
		LoanID: 1, PaymentDate: "2026-01-07", ActualAmount: amount(50), PaymentDay: 3,
	})
	var dup ErrDuplicateDay
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want ErrDuplicateDay", err)
	}
	if dup.Day != 3 {
		t.Errorf("Day = %d, want 3", dup.Day)
	}
	if got, want := err.Error(), "Payment for day 3 already exists"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestRecord_Validation(t *testing.T) {
	uc := newTestUsecase(&mockPaymentRepo{}, &mockLoanRepo{}, &mockBorrowerRepo{})

	cases := []struct {
		name    string
		in      RecordInput
		wantErr error
	}{
		{"missing loan", RecordInput{PaymentDate: "2026-01-07", ActualAmount: amount(10), PaymentDay: 1}, ErrLoanIDRequired},
		{"negative amount", RecordInput{LoanID: 1, PaymentDate: "2026-01-07", ActualAmount: amount(-1), PaymentDay: 1}, ErrBadAmount},
		{"nil amount", RecordInput{LoanID: 1, PaymentDate: "2026-01-07", PaymentDay: 1}, ErrBadAmount},
		{"missing date", RecordInput{LoanID: 1, ActualAmount: amount(10), PaymentDay: 1}, ErrDateRequired},
		{"bad date", RecordInput{LoanID: 1, PaymentDate: "07/01/2026", ActualAmount: amount(10), PaymentDay: 1}, ErrBadDate},
		{"zero day", RecordInput{LoanID: 1, PaymentDate: "2026-01-07", ActualAmount: amount(10)}, ErrBadDay},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Record(context.Background(), officer, tc.in); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdate_RederivesLoanStatus(t *testing.T) {
	stored := activeLoanFixture()
	var savedLoan *loan.Loan
	loans := &mockLoanRepo{
		GetByIDFn: func(context.Context, uint) (*loan.Loan, error) { cp := *stored; return &cp, nil },
		SaveFn:    func(_ context.Context, l *loan.Loan) error { savedLoan = l; return nil },
	}
	pays := &mockPaymentRepo{
		GetByIDFn: func(context.Context, uint) (*payment.Payment, error) {
			return &payment.Payment{ID: 9, LoanID: 1, ActualAmount: 100}, nil
		},
		SaveFn:              func(context.Context, *payment.Payment) error { return nil },
		SumActualByLoanIDFn: func(context.Context, uint) (float64, error) { return 300, nil },
	}
	uc := newTestUsecase(pays, loans, &mockBorrowerRepo{})

	if _, err := uc.Update(context.Background(), officer, 9, UpdateInput{ActualAmount: amount(-5)}); !errors.Is(err, ErrBadAmount) {
		t.Errorf("negative amount: err = %v, want ErrBadAmount", err)
	}

	p, err := uc.Update(context.Background(), officer, 9, UpdateInput{ActualAmount: amount(300)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.ActualAmount != 300 {
		t.Errorf("ActualAmount = %v, want 300", p.ActualAmount)
	}
	if savedLoan == nil || savedLoan.Status != loan.StatusCompleted {
		t.Errorf("loan status not rederived to completed: %+v", savedLoan)
	}
}

func TestDelete_RederivesLoanStatus(t *testing.T) {
	stored := activeLoanFixture()
	var savedLoan *loan.Loan
	loans := &mockLoanRepo{
		GetByIDFn: func(context.Context, uint) (*loan.Loan, error) { cp := *stored; return &cp, nil },
		SaveFn:    func(_ context.Context, l *loan.Loan) error { savedLoan = l; return nil },
	}
	deleted := false
	pays := &mockPaymentRepo{
		GetByIDFn: func(context.Context, uint) (*payment.Payment, error) {
			return &payment.Payment{ID: 9, LoanID: 1}, nil
		},
		DeleteFn:            func(context.Context, uint) error { deleted = true; return nil },
		SumActualByLoanIDFn: func(context.Context, uint) (float64, error) { return 0, nil },
	}
	uc := newTestUsecase(pays, loans, &mockBorrowerRepo{})

	if err := uc.Delete(context.Background(), officer, 9); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("payment not deleted")
	}
	if savedLoan == nil {
		t.Fatal("loan status not rederived after delete")
	}
}

func TestAccessDenied_ForeignLoan(t *testing.T) {
	loans := &mockLoanRepo{
		GetByIDFn: func(context.Context, uint) (*loan.Loan, error) {
			return &loan.Loan{ID: 1, AccountOfficerID: 99}, nil
		},
	}
	pays := &mockPaymentRepo{
		GetByIDFn: func(context.Context, uint) (*payment.Payment, error) {
			return &payment.Payment{ID: 9, LoanID: 1}, nil
		},
	}
	uc := newTestUsecase(pays, loans, &mockBorrowerRepo{})

	if _, err := uc.Record(context.Background(), officer, RecordInput{
		LoanID: 1, PaymentDate: "2026-01-07", ActualAmount: amount(10), PaymentDay: 1,
	}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Record: err = %v, want ErrForbidden", err)
	}
	if _, err := uc.Get(context.Background(), officer, 9); !errors.Is(err, ErrForbidden) {
		t.Errorf("Get: err = %v, want ErrForbidden", err)
	}
}

func TestSummarize(t *testing.T) {
	pays := []payment.Payment{
		{ExpectedAmount: 100, ActualAmount: 100},
		{ExpectedAmount: 100, ActualAmount: 50},
	}
	s := Summarize(pays)
	if s.TotalPayments != 2 || s.TotalExpected != 200 || s.TotalCollected != 150 {
		t.Errorf("summary = %+v", s)
	}
	if s.CollectionRate != 75 {
		t.Errorf("CollectionRate = %v, want 75", s.CollectionRate)
	}

	if s := Summarize(nil); s.CollectionRate != 0 {
		t.Errorf("empty summary rate = %v, want 0", s.CollectionRate)
	}
}

func TestOverdue(t *testing.T) {
	start := time.Now().AddDate(0, 0, -14)
	for start.Weekday() == time.Saturday || start.Weekday() == time.Sunday {
		start = start.AddDate(0, 0, -1)
	}
	l := loan.Loan{
		ID: 1, BorrowerID: 3, AccountOfficerID: officer.ID, Status: loan.StatusActive,
		DailyRepayment: 100, LoanDurationDays: 2,
		StartDate: start.Format(loan.DateLayout),
	}
	loans := &mockLoanRepo{
		ListFn: func(_ context.Context, f loan.ListFilter) ([]loan.Loan, error) {
			if f.Status != loan.StatusActive || f.AccountOfficerID != officer.ID {
				t.Errorf("unexpected filter: %+v", f)
			}
			return []loan.Loan{l}, nil
		},
	}
	pays := &mockPaymentRepo{
		ListFn: func(context.Context, payment.ListFilter) ([]payment.Payment, error) {
			// Day 1 fully paid, day 2 missing.
			return []payment.Payment{{LoanID: 1, PaymentDay: 1, ExpectedAmount: 100, ActualAmount: 100}}, nil
		},
	}
	borrowers := &mockBorrowerRepo{
		GetByIDFn: func(context.Context, uint) (*borrower.Borrower, error) {
			return &borrower.Borrower{ID: 3, Name: "Ada"}, nil
		},
	}
	uc := newTestUsecase(pays, loans, borrowers)

	overdue, err := uc.Overdue(context.Background(), officer)
	if err != nil {
		t.Fatalf("Overdue: %v", err)
	}
	if len(overdue) != 1 {
		t.Fatalf("len(overdue) = %d, want 1", len(overdue))
	}
	e := overdue[0]
	if e.PaymentDay != 2 || e.BorrowerName != "Ada" || e.ExpectedAmount != 100 || e.ActualAmount != 0 {
		t.Errorf("entry = %+v", e)
	}
	if e.DaysOverdue < 1 {
		t.Errorf("DaysOverdue = %d, want >= 1", e.DaysOverdue)
	}
}
