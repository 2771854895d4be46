package borrower

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/user"
)

var (
	ErrNotFound       = errors.New("Borrower not found")
	ErrNameRequired   = errors.New("Borrower name is required")
	ErrNameTooShort   = errors.New("Borrower name must be at least 2 characters")
	ErrForbidden      = errors.New("You do not have permission to access this borrower")
	ErrHasActiveLoans = errors.New("Cannot delete borrower with active loans")
)

type Usecase struct {
	borrowers borrower.Repository
	loans     loan.Repository
}

func New(borrowers borrower.Repository, loans loan.Repository) *Usecase {
	return &Usecase{borrowers: borrowers, loans: loans}
}

// List returns every borrower for admins and only the viewer's own borrowers
// for account officers.
func (u *Usecase) List(ctx context.Context, viewer *user.User) ([]borrower.Borrower, error) {
	if viewer.IsAdmin() {
		return u.borrowers.List(ctx)
	}
	return u.borrowers.ListByCreator(ctx, viewer.ID)
}

func (u *Usecase) Get(ctx context.Context, viewer *user.User, id uint) (*borrower.Borrower, error) {
	b, err := u.borrowers.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup borrower: %w", err)
	}
	if !u.canAccess(viewer, b) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (u *Usecase) Create(ctx context.Context, viewer *user.User, name, phone, address string) (*borrower.Borrower, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	b := &borrower.Borrower{
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		Address:   strings.TrimSpace(address),
		CreatedBy: viewer.ID,
	}
	if err := u.borrowers.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create borrower: %w", err)
	}
	return b, nil
}

func (u *Usecase) Update(ctx context.Context, viewer *user.User, id uint, name, phone, address string) (*borrower.Borrower, error) {
	b, err := u.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	b.Name = strings.TrimSpace(name)
	b.Phone = strings.TrimSpace(phone)
	b.Address = strings.TrimSpace(address)
	if err := u.borrowers.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("save borrower: %w", err)
	}
	return b, nil
}

// Delete removes a borrower. A borrower with an active loan cannot be
// deleted; the loan has to be closed out first.
func (u *Usecase) Delete(ctx context.Context, viewer *user.User, id uint) error {
	b, err := u.Get(ctx, viewer, id)
	if err != nil {
		return err
	}
	n, err := u.loans.CountActiveByBorrowerID(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("count active loans: %w", err)
	}
	if n > 0 {
		return ErrHasActiveLoans
	}
	if err := u.borrowers.Delete(ctx, b.ID); err != nil {
		return fmt.Errorf("delete borrower: %w", err)
	}
	return nil
}

// Loans lists a single borrower's loans, access-checked like Get.
func (u *Usecase) Loans(ctx context.Context, viewer *user.User, id uint) ([]loan.Loan, error) {
	b, err := u.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	return u.loans.List(ctx, loan.ListFilter{BorrowerID: b.ID})
}

func (u *Usecase) canAccess(viewer *user.User, b *borrower.Borrower) bool {
	return viewer.IsAdmin() || b.CreatedBy == viewer.ID
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) < 2 {
		return ErrNameTooShort
	}
	return nil
}
