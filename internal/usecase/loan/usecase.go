package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/uow"
	"lookman/internal/domain/user"
)

var (
	ErrNotFound         = errors.New("Loan not found")
	ErrForbidden        = errors.New("You do not have permission to access this loan")
	ErrBorrowerNotFound = errors.New("Borrower not found")
	ErrActiveLoanExists = errors.New("Borrower already has an active loan")
	ErrInvalidPrincipal = errors.New("Principal amount must be greater than 0")
	ErrInvalidStartDate = errors.New("Invalid start date format. Use YYYY-MM-DD")
	ErrNotActive        = errors.New("Only active loans can be updated")
	ErrInvalidStatus    = errors.New("Invalid loan status")
)

// Defaults apply when a create request leaves duration or rate unset.
type Defaults struct {
	DurationDays int
	InterestRate float64
}

type Usecase struct {
	loans     loan.Repository
	borrowers borrower.Repository
	payments  payment.Repository
	tx        uow.UnitOfWork
	defaults  Defaults
}

func New(loans loan.Repository, borrowers borrower.Repository, payments payment.Repository, tx uow.UnitOfWork, defaults Defaults) *Usecase {
	return &Usecase{loans: loans, borrowers: borrowers, payments: payments, tx: tx, defaults: defaults}
}

type CreateInput struct {
	BorrowerID      uint
	PrincipalAmount float64
	InterestRate    *float64
	Expenses        float64
	DurationDays    *int
	StartDate       string
}

// Create opens a loan for a borrower. The active-loan check and the insert
// run in one transaction so two concurrent requests cannot both pass the
// one-active-loan rule.
func (u *Usecase) Create(ctx context.Context, viewer *user.User, in CreateInput) (*loan.Loan, error) {
	if in.PrincipalAmount <= 0 {
		return nil, ErrInvalidPrincipal
	}
	b, err := u.borrowers.GetByID(ctx, in.BorrowerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBorrowerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup borrower: %w", err)
	}
	if !viewer.IsAdmin() && b.CreatedBy != viewer.ID {
		return nil, ErrForbidden
	}

	l := &loan.Loan{
		BorrowerID:       b.ID,
		AccountOfficerID: viewer.ID,
		PrincipalAmount:  in.PrincipalAmount,
		InterestRate:     u.defaults.InterestRate,
		Expenses:         in.Expenses,
		LoanDurationDays: u.defaults.DurationDays,
		StartDate:        in.StartDate,
		Status:           loan.StatusActive,
	}
	if in.InterestRate != nil {
		l.InterestRate = *in.InterestRate
	}
	if in.DurationDays != nil && *in.DurationDays > 0 {
		l.LoanDurationDays = *in.DurationDays
	}
	if l.StartDate == "" {
		l.StartDate = time.Now().Format(loan.DateLayout)
	}
	if err := l.CalculateDerived(); err != nil {
		return nil, ErrInvalidStartDate
	}

	err = u.tx.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Loans.CountActiveByBorrowerID(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("count active loans: %w", err)
		}
		if n > 0 {
			return ErrActiveLoanExists
		}
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (u *Usecase) Get(ctx context.Context, viewer *user.User, id uint) (*loan.Loan, error) {
	l, err := u.loans.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup loan: %w", err)
	}
	if !viewer.IsAdmin() && l.AccountOfficerID != viewer.ID {
		return nil, ErrForbidden
	}
	if err := u.fillTotals(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns loans visible to the viewer. Account officers only ever see
// their own portfolio regardless of the requested filter.
func (u *Usecase) List(ctx context.Context, viewer *user.User, f loan.ListFilter) ([]loan.Loan, error) {
	if !viewer.IsAdmin() {
		f.AccountOfficerID = viewer.ID
	}
	loans, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	for i := range loans {
		if err := u.fillTotals(ctx, &loans[i]); err != nil {
			return nil, err
		}
	}
	return loans, nil
}

type UpdateInput struct {
	PrincipalAmount *float64
	InterestRate    *float64
	Expenses        *float64
	DurationDays    *int
	StartDate       *string
}

// Update edits an active loan's terms and recalculates the derived amounts.
func (u *Usecase) Update(ctx context.Context, viewer *user.User, id uint, in UpdateInput) (*loan.Loan, error) {
	l, err := u.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if l.Status != loan.StatusActive {
		return nil, ErrNotActive
	}
	if in.PrincipalAmount != nil {
		if *in.PrincipalAmount <= 0 {
			return nil, ErrInvalidPrincipal
		}
		l.PrincipalAmount = *in.PrincipalAmount
	}
	if in.InterestRate != nil {
		l.InterestRate = *in.InterestRate
	}
	if in.Expenses != nil {
		l.Expenses = *in.Expenses
	}
	if in.DurationDays != nil && *in.DurationDays > 0 {
		l.LoanDurationDays = *in.DurationDays
	}
	if in.StartDate != nil {
		l.StartDate = *in.StartDate
	}
	if err := l.CalculateDerived(); err != nil {
		return nil, ErrInvalidStartDate
	}
	if err := u.loans.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save loan: %w", err)
	}
	return l, nil
}

// UpdateStatus sets the status directly, for manual corrections such as
// marking a loan defaulted.
func (u *Usecase) UpdateStatus(ctx context.Context, viewer *user.User, id uint, status string) (*loan.Loan, error) {
	if !loan.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	l, err := u.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	l.Status = loan.Status(status)
	if l.Status == loan.StatusCompleted && l.ActualEndDate == "" {
		l.ActualEndDate = time.Now().Format(loan.DateLayout)
	}
	if err := u.loans.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save loan: %w", err)
	}
	return l, nil
}

func (u *Usecase) Schedule(ctx context.Context, viewer *user.User, id uint) ([]loan.ScheduleEntry, error) {
	l, err := u.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	return l.Schedule()
}

// Detail bundles a loan with its schedule and recorded payments for the
// loan-details view.
type Detail struct {
	Loan     *loan.Loan           `json:"loan"`
	Schedule []loan.ScheduleEntry `json:"schedule"`
	Payments []payment.Payment    `json:"payments"`
}

func (u *Usecase) GetDetail(ctx context.Context, viewer *user.User, id uint) (*Detail, error) {
	l, err := u.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	sched, err := l.Schedule()
	if err != nil {
		return nil, err
	}
	pays, err := u.payments.List(ctx, payment.ListFilter{LoanID: l.ID})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return &Detail{Loan: l, Schedule: sched, Payments: pays}, nil
}

// Summary totals the viewer's portfolio by status.
type Summary struct {
	TotalLoans       int     `json:"total_loans"`
	ActiveLoans      int     `json:"active_loans"`
	CompletedLoans   int     `json:"completed_loans"`
	OverdueLoans     int     `json:"overdue_loans"`
	TotalPrincipal   float64 `json:"total_principal"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalCollected   float64 `json:"total_collected"`
}

func (u *Usecase) Summarize(ctx context.Context, viewer *user.User) (*Summary, error) {
	loans, err := u.List(ctx, viewer, loan.ListFilter{})
	if err != nil {
		return nil, err
	}
	s := &Summary{TotalLoans: len(loans)}
	for _, l := range loans {
		switch l.Status {
		case loan.StatusActive:
			s.ActiveLoans++
		case loan.StatusCompleted:
			s.CompletedLoans++
		case loan.StatusOverdue:
			s.OverdueLoans++
		}
		s.TotalPrincipal += l.PrincipalAmount
		s.TotalOutstanding += l.OutstandingBalance
		s.TotalCollected += l.TotalPayments
	}
	return s, nil
}

func (u *Usecase) fillTotals(ctx context.Context, l *loan.Loan) error {
	paid, err := u.payments.SumActualByLoanID(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("sum payments: %w", err)
	}
	l.TotalPayments = paid
	l.OutstandingBalance = l.TotalAmount - paid
	return nil
}
