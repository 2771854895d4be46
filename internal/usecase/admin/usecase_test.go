package admin

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lookman/internal/domain/loan"
	"lookman/internal/domain/user"
	"lookman/pkg/password"
)

type mockUserRepo struct {
	CreateFn        func(ctx context.Context, u *user.User) error
	GetByIDFn       func(ctx context.Context, id uint) (*user.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	SaveFn          func(ctx context.Context, u *user.User) error
	DeleteFn        func(ctx context.Context, id uint) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return m.CreateFn(ctx, u) }
func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return m.GetByUsernameFn(ctx, username)
}
func (m *mockUserRepo) List(context.Context) ([]user.User, error) { panic("not used") }
func (m *mockUserRepo) ListByRole(context.Context, user.Role) ([]user.User, error) {
	panic("not used")
}
func (m *mockUserRepo) Save(ctx context.Context, u *user.User) error { return m.SaveFn(ctx, u) }
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error    { return m.DeleteFn(ctx, id) }
func (m *mockUserRepo) Count(context.Context) (int64, error)         { panic("not used") }

type mockLoanRepo struct {
	CountByOfficerIDFn func(ctx context.Context, officerID uint) (int64, error)
}

func (m *mockLoanRepo) Create(context.Context, *loan.Loan) error          { panic("not used") }
func (m *mockLoanRepo) GetByID(context.Context, uint) (*loan.Loan, error) { panic("not used") }
func (m *mockLoanRepo) List(context.Context, loan.ListFilter) ([]loan.Loan, error) {
	panic("not used")
}
func (m *mockLoanRepo) GetActiveByBorrowerID(context.Context, uint) (*loan.Loan, error) {
	panic("not used")
}
func (m *mockLoanRepo) CountActiveByBorrowerID(context.Context, uint) (int64, error) {
	panic("not used")
}
func (m *mockLoanRepo) CountByOfficerID(ctx context.Context, officerID uint) (int64, error) {
	return m.CountByOfficerIDFn(ctx, officerID)
}
func (m *mockLoanRepo) CountByStatus(context.Context, loan.Status) (int64, error) { panic("not used") }
func (m *mockLoanRepo) Save(context.Context, *loan.Loan) error                    { panic("not used") }
func (m *mockLoanRepo) Count(context.Context) (int64, error)                      { panic("not used") }
func (m *mockLoanRepo) SumPrincipal(context.Context) (float64, error)             { panic("not used") }

var adminUser = &user.User{ID: 1, Role: user.RoleAdmin, IsActive: true}

func TestCreateUser(t *testing.T) {
	var created *user.User
	repo := &mockUserRepo{
		GetByUsernameFn: func(_ context.Context, username string) (*user.User, error) {
			if username == "taken" {
				return &user.User{ID: 9, Username: "taken"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, u *user.User) error {
			u.ID = 5
			created = u
			return nil
		},
	}
	uc := New(repo, &mockLoanRepo{})

	cases := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{"missing fields", CreateInput{Username: "x"}, ErrFieldsRequired},
		{"short password", CreateInput{Username: "x", Password: "ab1", FullName: "X"}, password.ErrTooShort},
		{"bad role", CreateInput{Username: "x", Password: "secret1", FullName: "X", Role: "superuser"}, ErrInvalidRole},
		{"duplicate username", CreateInput{Username: "taken", Password: "secret1", FullName: "X"}, ErrUsernameTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CreateUser(context.Background(), tc.in); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	usr, err := uc.CreateUser(context.Background(), CreateInput{
		Username: "tunde", Password: "secret1", FullName: "Tunde Bello",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created == nil {
		t.Fatal("user not persisted")
	}
	if usr.Role != user.RoleAccountOfficer {
		t.Errorf("default role = %s, want account_officer", usr.Role)
	}
	if !usr.IsFirstLogin || !usr.IsActive {
		t.Errorf("flags = first_login:%v active:%v", usr.IsFirstLogin, usr.IsActive)
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte("secret1")) != nil {
		t.Error("stored hash does not match password")
	}
}

func TestUpdateUser_PartialEdit(t *testing.T) {
	stored := &user.User{ID: 5, Username: "tunde", FullName: "Tunde Bello", Role: user.RoleAccountOfficer, IsActive: true}
	var saved *user.User
	repo := &mockUserRepo{
		GetByIDFn: func(context.Context, uint) (*user.User, error) { cp := *stored; return &cp, nil },
		SaveFn:    func(_ context.Context, u *user.User) error { saved = u; return nil },
	}
	uc := New(repo, &mockLoanRepo{})

	inactive := false
	usr, err := uc.UpdateUser(context.Background(), 5, UpdateInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if usr.IsActive {
		t.Error("IsActive not updated")
	}
	if usr.FullName != "Tunde Bello" || usr.Role != user.RoleAccountOfficer {
		t.Errorf("untouched fields changed: %+v", usr)
	}
	if saved == nil {
		t.Fatal("user not saved")
	}

	badRole := "superuser"
	if _, err := uc.UpdateUser(context.Background(), 5, UpdateInput{Role: &badRole}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("bad role: err = %v, want ErrInvalidRole", err)
	}
}

func TestUpdateUser_PasswordResetForcesFirstLogin(t *testing.T) {
	stored := &user.User{ID: 5, Username: "tunde", IsFirstLogin: false}
	var saved *user.User
	repo := &mockUserRepo{
		GetByIDFn: func(context.Context, uint) (*user.User, error) { cp := *stored; return &cp, nil },
		SaveFn:    func(_ context.Context, u *user.User) error { saved = u; return nil },
	}
	uc := New(repo, &mockLoanRepo{})

	short := "ab1"
	if _, err := uc.UpdateUser(context.Background(), 5, UpdateInput{Password: &short}); !errors.Is(err, password.ErrTooShort) {
		t.Errorf("short password: err = %v, want ErrTooShort", err)
	}

	pw := "reset-pass1"
	if _, err := uc.UpdateUser(context.Background(), 5, UpdateInput{Password: &pw}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if saved == nil || !saved.IsFirstLogin {
		t.Error("password reset did not force first login")
	}
}

func TestDeleteUser(t *testing.T) {
	deleted := false
	repo := &mockUserRepo{
		GetByIDFn: func(_ context.Context, id uint) (*user.User, error) {
			if id == 404 {
				return nil, gorm.ErrRecordNotFound
			}
			return &user.User{ID: id, Username: "tunde"}, nil
		},
		DeleteFn: func(context.Context, uint) error { deleted = true; return nil },
	}
	loans := &mockLoanRepo{
		CountByOfficerIDFn: func(_ context.Context, officerID uint) (int64, error) {
			if officerID == 7 {
				return 3, nil
			}
			return 0, nil
		},
	}
	uc := New(repo, loans)

	if err := uc.DeleteUser(context.Background(), adminUser, adminUser.ID); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("self delete: err = %v, want ErrSelfDelete", err)
	}
	if err := uc.DeleteUser(context.Background(), adminUser, 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user: err = %v, want ErrNotFound", err)
	}

	err := uc.DeleteUser(context.Background(), adminUser, 7)
	var hasLoans ErrHasLoans
	if !errors.As(err, &hasLoans) || hasLoans.Count != 3 {
		t.Errorf("user with loans: err = %v, want ErrHasLoans{3}", err)
	}
	if got, want := err.Error(), "Cannot delete user with 3 associated loans"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
	if deleted {
		t.Fatal("user deleted despite loans")
	}

	if err := uc.DeleteUser(context.Background(), adminUser, 8); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !deleted {
		t.Fatal("user not deleted")
	}
}
