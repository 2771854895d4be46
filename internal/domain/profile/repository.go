package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *BorrowerProfile) error
	GetByBorrowerID(ctx context.Context, borrowerID uint) (*BorrowerProfile, error)
	Save(ctx context.Context, p *BorrowerProfile) error
	AddDocument(ctx context.Context, d *Document) error
	ListDocuments(ctx context.Context, profileID uint) ([]Document, error)
	AddApplication(ctx context.Context, a *LoanApplication) error
	ListApplications(ctx context.Context) ([]LoanApplication, error)
	ListApplicationsByOfficer(ctx context.Context, officerID uint) ([]LoanApplication, error)
}
