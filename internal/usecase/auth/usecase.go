package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lookman/internal/domain/session"
	"lookman/internal/domain/user"
	"lookman/pkg/id"
	"lookman/pkg/password"
)

const bcryptCost = 14

var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrAccountDisabled    = errors.New("Account is deactivated. Contact administrator")
	ErrUnauthenticated    = errors.New("Authentication required")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrInvalidEmail       = errors.New("Invalid email format")
	ErrInvalidPhone       = errors.New("Invalid phone number format")
)

type Usecase struct {
	users    user.Repository
	sessions session.Store
	ttl      time.Duration
}

func New(users user.Repository, sessions session.Store, ttl time.Duration) *Usecase {
	return &Usecase{users: users, sessions: sessions, ttl: ttl}
}

// Login verifies credentials and opens a server-side session. The returned
// token goes into the session cookie; the caller decides how to surface the
// first-login flag.
func (u *Usecase) Login(ctx context.Context, username, pw string) (*user.User, string, error) {
	usr, err := u.users.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(pw)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !usr.IsActive {
		return nil, "", ErrAccountDisabled
	}

	sess := &session.Session{
		Token:     id.NewToken(),
		UserID:    usr.ID,
		ExpiresAt: time.Now().Add(u.ttl),
	}
	if err := u.sessions.Put(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("open session: %w", err)
	}
	return usr, sess.Token, nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return u.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its active user. Any failure maps
// to ErrUnauthenticated so callers can answer with a single 401 shape.
func (u *Usecase) Authenticate(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := u.sessions.Get(ctx, token)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	usr, err := u.users.GetByID(ctx, sess.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !usr.IsActive {
		return nil, ErrUnauthenticated
	}
	return usr, nil
}

// ChangePassword rotates the caller's password. On a first login the current
// password is not checked; the forced change is the check.
func (u *Usecase) ChangePassword(ctx context.Context, usr *user.User, current, newPw, confirm string) error {
	if !usr.IsFirstLogin {
		if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(current)) != nil {
			return ErrWrongPassword
		}
	}
	if err := password.Validate(newPw, confirm); err != nil {
		return err
	}
	hash, err := HashPassword(newPw)
	if err != nil {
		return err
	}
	usr.PasswordHash = hash
	usr.IsFirstLogin = false
	usr.LastPasswordChange = time.Now()
	if err := u.users.Save(ctx, usr); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// UpdateProfile lets a user edit their own contact details. Username and role
// stay fixed here; those are admin operations.
func (u *Usecase) UpdateProfile(ctx context.Context, usr *user.User, fullName, email, phone string) error {
	if email != "" && !ValidEmail(email) {
		return ErrInvalidEmail
	}
	if phone != "" && !ValidPhone(phone) {
		return ErrInvalidPhone
	}
	if fullName != "" {
		usr.FullName = fullName
	}
	usr.Email = email
	usr.Phone = phone
	if err := u.users.Save(ctx, usr); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Bootstrap seeds the default admin account on an empty user table so a fresh
// install can be logged into.
func (u *Usecase) Bootstrap(ctx context.Context) error {
	n, err := u.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	hash, err := HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := &user.User{
		Username:     "admin",
		PasswordHash: hash,
		FullName:     "System Administrator",
		Role:         user.RoleAdmin,
		IsActive:     true,
		IsFirstLogin: true,
	}
	if err := u.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}
	return nil
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
