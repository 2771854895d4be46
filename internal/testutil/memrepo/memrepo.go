// Package memrepo provides map-backed repository implementations for tests
// that wire full usecases without a database. Missing records surface as
// gorm.ErrRecordNotFound so error handling matches the gorm adapters.
package memrepo

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/profile"
	"lookman/internal/domain/uow"
	"lookman/internal/domain/user"
)

// Stores bundles every in-memory repository over one shared lock.
type Stores struct {
	Users     *UserRepo
	Borrowers *BorrowerRepo
	Loans     *LoanRepo
	Payments  *PaymentRepo
	Profiles  *ProfileRepo
}

func New() *Stores {
	mu := &sync.Mutex{}
	loans := &LoanRepo{mu: mu, byID: map[uint]loan.Loan{}}
	return &Stores{
		Users:     &UserRepo{mu: mu, byID: map[uint]user.User{}},
		Borrowers: &BorrowerRepo{mu: mu, byID: map[uint]borrower.Borrower{}},
		Loans:     loans,
		Payments:  &PaymentRepo{mu: mu, byID: map[uint]payment.Payment{}, loans: loans},
		Profiles: &ProfileRepo{
			mu:   mu,
			byID: map[uint]profile.BorrowerProfile{},
		},
	}
}

// UoW satisfies uow.UnitOfWork by running fn over the same stores. There is
// no rollback; tests that need rollback semantics use the gorm adapters.
func (s *Stores) UoW() uow.UnitOfWork { return memUoW{s} }

type memUoW struct{ s *Stores }

func (m memUoW) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(uow.Repos{
		Borrowers: m.s.Borrowers,
		Loans:     m.s.Loans,
		Payments:  m.s.Payments,
	})
}

var errNotFound = gorm.ErrRecordNotFound
