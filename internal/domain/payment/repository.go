package payment

import "context"

// ListFilter narrows List and SumActual; zero values mean "no constraint".
type ListFilter struct {
	LoanID           uint
	PaymentDate      string
	PaymentDateFrom  string
	PaymentDateTo    string
	AccountOfficerID uint
}

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	List(ctx context.Context, f ListFilter) ([]Payment, error)
	GetByLoanAndDay(ctx context.Context, loanID uint, day int) (*Payment, error)
	SumActualByLoanID(ctx context.Context, loanID uint) (float64, error)
	SumActual(ctx context.Context, f ListFilter) (float64, error)
	Save(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uint) error
}
