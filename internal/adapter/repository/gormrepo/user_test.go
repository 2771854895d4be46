package gormrepo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/user"
)

func TestUserRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{
		Username:     "tunde",
		PasswordHash: "x",
		FullName:     "Tunde Bello",
		Role:         user.RoleAccountOfficer,
		IsActive:     true,
		IsFirstLogin: true,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "tunde")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != u.ID || got.FullName != "Tunde Bello" {
		t.Errorf("user = %+v", got)
	}
	if _, err := repo.GetByUsername(ctx, "ghost"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing user: err = %v, want ErrRecordNotFound", err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count = %d, err %v; want 1", n, err)
	}

	officers, err := repo.ListByRole(ctx, user.RoleAccountOfficer)
	if err != nil || len(officers) != 1 {
		t.Errorf("ListByRole: %d, err %v; want 1", len(officers), err)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("after delete: err = %v, want ErrRecordNotFound", err)
	}
}

func TestBorrowerRepository_ListByCreator(t *testing.T) {
	db := openTestDB(t)
	repo := NewBorrowerRepository(db)
	ctx := context.Background()

	for _, b := range []*borrower.Borrower{
		{Name: "Ada", CreatedBy: 2},
		{Name: "Bola", CreatedBy: 2},
		{Name: "Chidi", CreatedBy: 4},
	} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil || len(all) != 3 {
		t.Errorf("List: %d, err %v; want 3", len(all), err)
	}
	mine, err := repo.ListByCreator(ctx, 2)
	if err != nil || len(mine) != 2 {
		t.Errorf("ListByCreator: %d, err %v; want 2", len(mine), err)
	}
	n, err := repo.Count(ctx)
	if err != nil || n != 3 {
		t.Errorf("Count = %d, err %v; want 3", n, err)
	}
}
