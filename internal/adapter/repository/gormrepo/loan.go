package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"lookman/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var out loan.Loan
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loan.ListFilter) ([]loan.Loan, error) {
	var out []loan.Loan
	res := r.filtered(ctx, f).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) GetActiveByBorrowerID(ctx context.Context, borrowerID uint) (*loan.Loan, error) {
	var out loan.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status = ?", borrowerID, loan.StatusActive).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) CountActiveByBorrowerID(ctx context.Context, borrowerID uint) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("borrower_id = ? AND status = ?", borrowerID, loan.StatusActive).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) CountByOfficerID(ctx context.Context, officerID uint) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("account_officer_id = ?", officerID).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context, s loan.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loan.Loan{}).Where("status = ?", s).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loan.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loan.Loan{}).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) SumPrincipal(ctx context.Context) (float64, error) {
	var total float64
	res := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Select("COALESCE(SUM(principal_amount), 0)").
		Scan(&total)
	return total, res.Error
}

func (r *LoanRepository) filtered(ctx context.Context, f loan.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&loan.Loan{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.BorrowerID != 0 {
		q = q.Where("borrower_id = ?", f.BorrowerID)
	}
	if f.AccountOfficerID != 0 {
		q = q.Where("account_officer_id = ?", f.AccountOfficerID)
	}
	if f.StartDateFrom != "" {
		q = q.Where("start_date >= ?", f.StartDateFrom)
	}
	if f.StartDateTo != "" {
		q = q.Where("start_date <= ?", f.StartDateTo)
	}
	return q
}
