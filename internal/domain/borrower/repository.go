package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByID(ctx context.Context, id uint) (*Borrower, error)
	List(ctx context.Context) ([]Borrower, error)
	ListByCreator(ctx context.Context, userID uint) ([]Borrower, error)
	Save(ctx context.Context, b *Borrower) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
