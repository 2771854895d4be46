package memrepo

import (
	"context"
	"sort"
	"sync"

	"lookman/internal/domain/borrower"
)

type BorrowerRepo struct {
	mu   *sync.Mutex
	seq  uint
	byID map[uint]borrower.Borrower
}

func (r *BorrowerRepo) Create(_ context.Context, b *borrower.Borrower) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	b.ID = r.seq
	r.byID[b.ID] = *b
	return nil
}

func (r *BorrowerRepo) GetByID(_ context.Context, id uint) (*borrower.Borrower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, errNotFound
	}
	return &b, nil
}

func (r *BorrowerRepo) List(_ context.Context) ([]borrower.Borrower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]borrower.Borrower, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *BorrowerRepo) ListByCreator(_ context.Context, userID uint) ([]borrower.Borrower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []borrower.Borrower
	for _, b := range r.byID {
		if b.CreatedBy == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *BorrowerRepo) Save(_ context.Context, b *borrower.Borrower) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; !ok {
		return errNotFound
	}
	r.byID[b.ID] = *b
	return nil
}

func (r *BorrowerRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *BorrowerRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}
