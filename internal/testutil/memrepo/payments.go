package memrepo

import (
	"context"
	"sort"
	"sync"

	"lookman/internal/domain/payment"
)

type PaymentRepo struct {
	mu   *sync.Mutex
	seq  uint
	byID map[uint]payment.Payment

	// loans resolves the officer filter, mirroring the join in the gorm
	// adapter. Shares the package lock, so it is read directly.
	loans *LoanRepo
}

func (r *PaymentRepo) Create(_ context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	r.byID[p.ID] = *p
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id uint) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, errNotFound
	}
	return &p, nil
}

func (r *PaymentRepo) match(p payment.Payment, f payment.ListFilter) bool {
	if f.LoanID != 0 && p.LoanID != f.LoanID {
		return false
	}
	if f.PaymentDate != "" && p.PaymentDate != f.PaymentDate {
		return false
	}
	if f.PaymentDateFrom != "" && p.PaymentDate < f.PaymentDateFrom {
		return false
	}
	if f.PaymentDateTo != "" && p.PaymentDate > f.PaymentDateTo {
		return false
	}
	if f.AccountOfficerID != 0 {
		l, ok := r.loans.byID[p.LoanID]
		if !ok || l.AccountOfficerID != f.AccountOfficerID {
			return false
		}
	}
	return true
}

func (r *PaymentRepo) List(_ context.Context, f payment.ListFilter) ([]payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payment.Payment
	for _, p := range r.byID {
		if r.match(p, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PaymentRepo) GetByLoanAndDay(_ context.Context, loanID uint, day int) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.LoanID == loanID && p.PaymentDay == day {
			p := p
			return &p, nil
		}
	}
	return nil, errNotFound
}

func (r *PaymentRepo) SumActualByLoanID(_ context.Context, loanID uint) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, p := range r.byID {
		if p.LoanID == loanID {
			sum += p.ActualAmount
		}
	}
	return sum, nil
}

func (r *PaymentRepo) SumActual(_ context.Context, f payment.ListFilter) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, p := range r.byID {
		if r.match(p, f) {
			sum += p.ActualAmount
		}
	}
	return sum, nil
}

func (r *PaymentRepo) Save(_ context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return errNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *PaymentRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
