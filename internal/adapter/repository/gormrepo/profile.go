package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"lookman/internal/domain/profile"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *profile.BorrowerProfile) error {
	return r.db.WithContext(ctx).Omit("Documents").Create(p).Error
}

func (r *ProfileRepository) GetByBorrowerID(ctx context.Context, borrowerID uint) (*profile.BorrowerProfile, error) {
	var out profile.BorrowerProfile
	res := r.db.WithContext(ctx).Where("borrower_id = ?", borrowerID).First(&out)
	return &out, res.Error
}

func (r *ProfileRepository) Save(ctx context.Context, p *profile.BorrowerProfile) error {
	return r.db.WithContext(ctx).Omit("Documents").Save(p).Error
}

func (r *ProfileRepository) AddDocument(ctx context.Context, d *profile.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ProfileRepository) ListDocuments(ctx context.Context, profileID uint) ([]profile.Document, error) {
	var out []profile.Document
	res := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("uploaded_at DESC").
		Find(&out)
	return out, res.Error
}

func (r *ProfileRepository) AddApplication(ctx context.Context, a *profile.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ProfileRepository) ListApplications(ctx context.Context) ([]profile.LoanApplication, error) {
	var out []profile.LoanApplication
	res := r.db.WithContext(ctx).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *ProfileRepository) ListApplicationsByOfficer(ctx context.Context, officerID uint) ([]profile.LoanApplication, error) {
	var out []profile.LoanApplication
	res := r.db.WithContext(ctx).
		Where("assigned_officer_id = ?", officerID).
		Order("created_at DESC").
		Find(&out)
	return out, res.Error
}
