package memrepo

import (
	"context"
	"sort"
	"sync"

	"lookman/internal/domain/loan"
)

type LoanRepo struct {
	mu   *sync.Mutex
	seq  uint
	byID map[uint]loan.Loan
}

func (r *LoanRepo) Create(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	l.ID = r.seq
	r.byID[l.ID] = *l
	return nil
}

func (r *LoanRepo) GetByID(_ context.Context, id uint) (*loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, errNotFound
	}
	return &l, nil
}

func matches(l loan.Loan, f loan.ListFilter) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if l.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.BorrowerID != 0 && l.BorrowerID != f.BorrowerID {
		return false
	}
	if f.AccountOfficerID != 0 && l.AccountOfficerID != f.AccountOfficerID {
		return false
	}
	if f.StartDateFrom != "" && l.StartDate < f.StartDateFrom {
		return false
	}
	if f.StartDateTo != "" && l.StartDate > f.StartDateTo {
		return false
	}
	return true
}

func (r *LoanRepo) List(_ context.Context, f loan.ListFilter) ([]loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []loan.Loan
	for _, l := range r.byID {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LoanRepo) GetActiveByBorrowerID(_ context.Context, borrowerID uint) (*loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.byID {
		if l.BorrowerID == borrowerID && l.Status == loan.StatusActive {
			l := l
			return &l, nil
		}
	}
	return nil, errNotFound
}

func (r *LoanRepo) CountActiveByBorrowerID(_ context.Context, borrowerID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.byID {
		if l.BorrowerID == borrowerID && l.Status == loan.StatusActive {
			n++
		}
	}
	return n, nil
}

func (r *LoanRepo) CountByOfficerID(_ context.Context, officerID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.byID {
		if l.AccountOfficerID == officerID {
			n++
		}
	}
	return n, nil
}

func (r *LoanRepo) CountByStatus(_ context.Context, s loan.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.byID {
		if l.Status == s {
			n++
		}
	}
	return n, nil
}

func (r *LoanRepo) Save(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[l.ID]; !ok {
		return errNotFound
	}
	r.byID[l.ID] = *l
	return nil
}

func (r *LoanRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *LoanRepo) SumPrincipal(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, l := range r.byID {
		sum += l.PrincipalAmount
	}
	return sum, nil
}
