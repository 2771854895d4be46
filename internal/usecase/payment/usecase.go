package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/uow"
	"lookman/internal/domain/user"
)

var (
	ErrNotFound       = errors.New("Payment not found")
	ErrLoanNotFound   = errors.New("Loan not found")
	ErrForbidden      = errors.New("Access denied to this loan")
	ErrLoanIDRequired = errors.New("Loan ID is required")
	ErrBadAmount      = errors.New("Payment amount must be 0 or greater")
	ErrDateRequired   = errors.New("Payment date is required")
	ErrBadDate        = errors.New("Invalid payment date format. Use YYYY-MM-DD")
	ErrBadDay         = errors.New("Payment day must be 1 or greater")
)

// ErrDuplicateDay reports which repayment day was already recorded.
type ErrDuplicateDay struct{ Day int }

func (e ErrDuplicateDay) Error() string {
	return fmt.Sprintf("Payment for day %d already exists", e.Day)
}

type Usecase struct {
	payments  payment.Repository
	loans     loan.Repository
	borrowers borrower.Repository
	tx        uow.UnitOfWork
}

func New(payments payment.Repository, loans loan.Repository, borrowers borrower.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{payments: payments, loans: loans, borrowers: borrowers, tx: tx}
}

type RecordInput struct {
	LoanID       uint
	PaymentDate  string
	ActualAmount *float64
	PaymentDay   int
	Notes        string
}

// Record stores a repayment and rederives the loan status in the same
// transaction. One record per (loan, repayment day).
func (u *Usecase) Record(ctx context.Context, viewer *user.User, in RecordInput) (*payment.Payment, error) {
	if in.LoanID == 0 {
		return nil, ErrLoanIDRequired
	}
	if in.ActualAmount == nil || *in.ActualAmount < 0 {
		return nil, ErrBadAmount
	}
	if in.PaymentDate == "" {
		return nil, ErrDateRequired
	}
	if in.PaymentDay < 1 {
		return nil, ErrBadDay
	}
	date, err := time.Parse(loan.DateLayout, in.PaymentDate)
	if err != nil {
		return nil, ErrBadDate
	}

	l, err := u.getLoan(ctx, viewer, in.LoanID)
	if err != nil {
		return nil, err
	}

	p := &payment.Payment{
		LoanID:            l.ID,
		PaymentDate:       in.PaymentDate,
		ExpectedAmount:    l.DailyRepayment,
		ActualAmount:      *in.ActualAmount,
		PaymentDay:        in.PaymentDay,
		IsWeekendAdjusted: date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
		RecordedBy:        viewer.ID,
		Notes:             strings.TrimSpace(in.Notes),
	}

	err = u.tx.WithinTx(ctx, func(r uow.Repos) error {
		existing, err := r.Payments.GetByLoanAndDay(ctx, l.ID, in.PaymentDay)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check duplicate payment: %w", err)
		}
		if existing != nil {
			return ErrDuplicateDay{Day: in.PaymentDay}
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return u.rederiveStatus(ctx, r, l)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

type UpdateInput struct {
	ActualAmount *float64
	Notes        *string
}

func (u *Usecase) Update(ctx context.Context, viewer *user.User, id uint, in UpdateInput) (*payment.Payment, error) {
	p, l, err := u.getPaymentWithLoan(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if in.ActualAmount != nil {
		if *in.ActualAmount < 0 {
			return nil, ErrBadAmount
		}
		p.ActualAmount = *in.ActualAmount
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	err = u.tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Payments.Save(ctx, p); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}
		return u.rederiveStatus(ctx, r, l)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Delete(ctx context.Context, viewer *user.User, id uint) error {
	p, l, err := u.getPaymentWithLoan(ctx, viewer, id)
	if err != nil {
		return err
	}
	return u.tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Payments.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}
		return u.rederiveStatus(ctx, r, l)
	})
}

func (u *Usecase) Get(ctx context.Context, viewer *user.User, id uint) (*payment.Payment, error) {
	p, _, err := u.getPaymentWithLoan(ctx, viewer, id)
	return p, err
}

// List returns payments visible to the viewer, optionally narrowed by loan or
// date. Account officers only see payments on their own loans.
func (u *Usecase) List(ctx context.Context, viewer *user.User, f payment.ListFilter) ([]payment.Payment, error) {
	if !viewer.IsAdmin() {
		f.AccountOfficerID = viewer.ID
	}
	return u.payments.List(ctx, f)
}

// TodaySummary aggregates the day's recorded payments.
type TodaySummary struct {
	TotalPayments  int     `json:"total_payments"`
	TotalExpected  float64 `json:"total_expected"`
	TotalCollected float64 `json:"total_collected"`
	CollectionRate float64 `json:"collection_rate"`
}

func (u *Usecase) Today(ctx context.Context, viewer *user.User) ([]payment.Payment, TodaySummary, error) {
	today := time.Now().Format(loan.DateLayout)
	pays, err := u.List(ctx, viewer, payment.ListFilter{PaymentDate: today})
	if err != nil {
		return nil, TodaySummary{}, err
	}
	return pays, Summarize(pays), nil
}

// Summarize totals a set of payments; the collection rate is zero when
// nothing was expected.
func Summarize(pays []payment.Payment) TodaySummary {
	var s TodaySummary
	s.TotalPayments = len(pays)
	for _, p := range pays {
		s.TotalExpected += p.ExpectedAmount
		s.TotalCollected += p.ActualAmount
	}
	if s.TotalExpected > 0 {
		s.CollectionRate = s.TotalCollected / s.TotalExpected * 100
	}
	return s
}

// OverdueEntry is a schedule slot that passed without a full repayment.
type OverdueEntry struct {
	LoanID         uint    `json:"loan_id"`
	BorrowerName   string  `json:"borrower_name"`
	PaymentDay     int     `json:"payment_day"`
	ExpectedDate   string  `json:"expected_date"`
	ExpectedAmount float64 `json:"expected_amount"`
	ActualAmount   float64 `json:"actual_amount"`
	DaysOverdue    int     `json:"days_overdue"`
}

// Overdue walks each active loan's schedule and reports every past slot with
// a missing or short payment.
func (u *Usecase) Overdue(ctx context.Context, viewer *user.User) ([]OverdueEntry, error) {
	f := loan.ListFilter{Status: loan.StatusActive}
	if !viewer.IsAdmin() {
		f.AccountOfficerID = viewer.ID
	}
	activeLoans, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}

	today := time.Now()
	todayStr := today.Format(loan.DateLayout)
	names := make(map[uint]string)
	overdue := make([]OverdueEntry, 0)
	for i := range activeLoans {
		l := &activeLoans[i]
		if _, ok := names[l.BorrowerID]; !ok {
			b, err := u.borrowers.GetByID(ctx, l.BorrowerID)
			if err == nil {
				names[l.BorrowerID] = b.Name
			}
		}
		sched, err := l.Schedule()
		if err != nil {
			return nil, err
		}
		recorded, err := u.payments.List(ctx, payment.ListFilter{LoanID: l.ID})
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		byDay := make(map[int]*payment.Payment, len(recorded))
		for j := range recorded {
			byDay[recorded[j].PaymentDay] = &recorded[j]
		}
		for _, slot := range sched {
			if slot.Date >= todayStr {
				continue
			}
			p := byDay[slot.Day]
			if p != nil && p.ActualAmount >= p.ExpectedAmount {
				continue
			}
			var actual float64
			if p != nil {
				actual = p.ActualAmount
			}
			slotDate, err := time.Parse(loan.DateLayout, slot.Date)
			if err != nil {
				return nil, err
			}
			overdue = append(overdue, OverdueEntry{
				LoanID:         l.ID,
				BorrowerName:   names[l.BorrowerID],
				PaymentDay:     slot.Day,
				ExpectedDate:   slot.Date,
				ExpectedAmount: l.DailyRepayment,
				ActualAmount:   actual,
				DaysOverdue:    int(today.Sub(slotDate).Hours() / 24),
			})
		}
	}
	return overdue, nil
}

func (u *Usecase) getLoan(ctx context.Context, viewer *user.User, id uint) (*loan.Loan, error) {
	l, err := u.loans.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup loan: %w", err)
	}
	if !viewer.IsAdmin() && l.AccountOfficerID != viewer.ID {
		return nil, ErrForbidden
	}
	return l, nil
}

func (u *Usecase) getPaymentWithLoan(ctx context.Context, viewer *user.User, id uint) (*payment.Payment, *loan.Loan, error) {
	p, err := u.payments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lookup payment: %w", err)
	}
	l, err := u.getLoan(ctx, viewer, p.LoanID)
	if err != nil {
		return nil, nil, err
	}
	return p, l, nil
}

func (u *Usecase) rederiveStatus(ctx context.Context, r uow.Repos, l *loan.Loan) error {
	paid, err := r.Payments.SumActualByLoanID(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("sum payments: %w", err)
	}
	l.DeriveStatus(paid, time.Now())
	if err := r.Loans.Save(ctx, l); err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	return nil
}
