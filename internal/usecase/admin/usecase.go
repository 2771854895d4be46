package admin

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lookman/internal/domain/loan"
	"lookman/internal/domain/user"
	"lookman/internal/usecase/auth"
	"lookman/pkg/password"
)

var (
	ErrNotFound       = errors.New("User not found")
	ErrFieldsRequired = errors.New("Username, password, and full name are required")
	ErrInvalidRole    = errors.New("Invalid role")
	ErrUsernameTaken  = errors.New("Username already exists")
	ErrSelfDelete     = errors.New("Cannot delete your own account")
)

// ErrHasLoans blocks deleting a user that still manages loans.
type ErrHasLoans struct{ Count int64 }

func (e ErrHasLoans) Error() string {
	return fmt.Sprintf("Cannot delete user with %d associated loans", e.Count)
}

// Usecase covers admin-only user management.
type Usecase struct {
	users user.Repository
	loans loan.Repository
}

func New(users user.Repository, loans loan.Repository) *Usecase {
	return &Usecase{users: users, loans: loans}
}

func (u *Usecase) ListUsers(ctx context.Context) ([]user.User, error) {
	return u.users.List(ctx)
}

type CreateInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
	Role     string
}

func (u *Usecase) CreateUser(ctx context.Context, in CreateInput) (*user.User, error) {
	if in.Username == "" || in.Password == "" || in.FullName == "" {
		return nil, ErrFieldsRequired
	}
	if len(in.Password) < password.MinLength {
		return nil, password.ErrTooShort
	}
	role := in.Role
	if role == "" {
		role = string(user.RoleAccountOfficer)
	}
	if !user.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if _, err := u.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	usr := &user.User{
		Username:     in.Username,
		PasswordHash: hash,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         user.Role(role),
		IsActive:     true,
		IsFirstLogin: true,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return usr, nil
}

type UpdateInput struct {
	FullName *string
	Email    *string
	Phone    *string
	Role     *string
	IsActive *bool
	Password *string
}

// UpdateUser edits the provided fields only. A password set here counts as an
// admin reset, so the user goes back through the first-login change.
func (u *Usecase) UpdateUser(ctx context.Context, id uint, in UpdateInput) (*user.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if in.FullName != nil {
		usr.FullName = *in.FullName
	}
	if in.Email != nil {
		usr.Email = *in.Email
	}
	if in.Phone != nil {
		usr.Phone = *in.Phone
	}
	if in.Role != nil {
		if !user.ValidRole(*in.Role) {
			return nil, ErrInvalidRole
		}
		usr.Role = user.Role(*in.Role)
	}
	if in.IsActive != nil {
		usr.IsActive = *in.IsActive
	}
	if in.Password != nil {
		if len(*in.Password) < password.MinLength {
			return nil, password.ErrTooShort
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		usr.PasswordHash = hash
		usr.IsFirstLogin = true
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return usr, nil
}

// DeleteUser removes an account. The caller cannot delete themselves, and a
// user still attached to loans has to be deactivated instead.
func (u *Usecase) DeleteUser(ctx context.Context, viewer *user.User, id uint) error {
	if viewer.ID == id {
		return ErrSelfDelete
	}
	usr, err := u.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	n, err := u.loans.CountByOfficerID(ctx, usr.ID)
	if err != nil {
		return fmt.Errorf("count loans: %w", err)
	}
	if n > 0 {
		return ErrHasLoans{Count: n}
	}
	if err := u.users.Delete(ctx, usr.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
