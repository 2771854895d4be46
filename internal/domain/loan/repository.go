package loan

import "context"

// ListFilter narrows List results; zero values mean "no constraint".
type ListFilter struct {
	Status           Status
	Statuses         []Status
	BorrowerID       uint
	AccountOfficerID uint
	StartDateFrom    string
	StartDateTo      string
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	GetActiveByBorrowerID(ctx context.Context, borrowerID uint) (*Loan, error)
	CountActiveByBorrowerID(ctx context.Context, borrowerID uint) (int64, error)
	CountByOfficerID(ctx context.Context, officerID uint) (int64, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
	Save(ctx context.Context, l *Loan) error
	Count(ctx context.Context) (int64, error)
	SumPrincipal(ctx context.Context) (float64, error)
}
