package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrower.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) GetByID(ctx context.Context, id uint) (*borrower.Borrower, error) {
	var out borrower.Borrower
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *BorrowerRepository) List(ctx context.Context) ([]borrower.Borrower, error) {
	var out []borrower.Borrower
	res := r.db.WithContext(ctx).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *BorrowerRepository) ListByCreator(ctx context.Context, creatorID uint) ([]borrower.Borrower, error) {
	var out []borrower.Borrower
	res := r.db.WithContext(ctx).Where("created_by = ?", creatorID).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *BorrowerRepository) Save(ctx context.Context, b *borrower.Borrower) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BorrowerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&borrower.Borrower{}, id).Error
}

func (r *BorrowerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&borrower.Borrower{}).Count(&n)
	return n, res.Error
}
