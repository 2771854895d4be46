package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"lookman/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var out payment.Payment
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *PaymentRepository) List(ctx context.Context, f payment.ListFilter) ([]payment.Payment, error) {
	var out []payment.Payment
	res := r.filtered(ctx, f).Order("payments.created_at DESC").Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) GetByLoanAndDay(ctx context.Context, loanID uint, day int) (*payment.Payment, error) {
	var out payment.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND payment_day = ?", loanID, day).
		First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) SumActualByLoanID(ctx context.Context, loanID uint) (float64, error) {
	var total float64
	res := r.db.WithContext(ctx).Model(&payment.Payment{}).
		Where("loan_id = ?", loanID).
		Select("COALESCE(SUM(actual_amount), 0)").
		Scan(&total)
	return total, res.Error
}

func (r *PaymentRepository) SumActual(ctx context.Context, f payment.ListFilter) (float64, error) {
	var total float64
	res := r.filtered(ctx, f).
		Select("COALESCE(SUM(payments.actual_amount), 0)").
		Scan(&total)
	return total, res.Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&payment.Payment{}, id).Error
}

func (r *PaymentRepository) filtered(ctx context.Context, f payment.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&payment.Payment{})
	if f.LoanID != 0 {
		q = q.Where("payments.loan_id = ?", f.LoanID)
	}
	if f.PaymentDate != "" {
		q = q.Where("payments.payment_date = ?", f.PaymentDate)
	}
	if f.PaymentDateFrom != "" {
		q = q.Where("payments.payment_date >= ?", f.PaymentDateFrom)
	}
	if f.PaymentDateTo != "" {
		q = q.Where("payments.payment_date <= ?", f.PaymentDateTo)
	}
	if f.AccountOfficerID != 0 {
		q = q.Joins("JOIN loans ON loans.id = payments.loan_id").
			Where("loans.account_officer_id = ?", f.AccountOfficerID)
	}
	return q
}
