package uow

import (
	"context"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
)

// Repos bundles the repositories that participate in a transaction.
type Repos struct {
	Borrowers borrower.Repository
	Loans     loan.Repository
	Payments  payment.Repository
}

// UnitOfWork runs fn with repositories bound to a single transaction; any
// error rolls the whole unit back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
