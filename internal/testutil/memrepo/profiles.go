package memrepo

import (
	"context"
	"sort"
	"sync"

	"lookman/internal/domain/profile"
)

type ProfileRepo struct {
	mu     *sync.Mutex
	seq    uint
	docSeq uint
	appSeq uint
	byID   map[uint]profile.BorrowerProfile
	docs   []profile.Document
	apps   []profile.LoanApplication
}

func (r *ProfileRepo) Create(_ context.Context, p *profile.BorrowerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	r.byID[p.ID] = *p
	return nil
}

func (r *ProfileRepo) GetByBorrowerID(_ context.Context, borrowerID uint) (*profile.BorrowerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.BorrowerID == borrowerID {
			p := p
			return &p, nil
		}
	}
	return nil, errNotFound
}

func (r *ProfileRepo) Save(_ context.Context, p *profile.BorrowerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return errNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *ProfileRepo) AddDocument(_ context.Context, d *profile.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docSeq++
	d.ID = r.docSeq
	r.docs = append(r.docs, *d)
	return nil
}

func (r *ProfileRepo) ListDocuments(_ context.Context, profileID uint) ([]profile.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.Document
	for _, d := range r.docs {
		if d.ProfileID == profileID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *ProfileRepo) AddApplication(_ context.Context, a *profile.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appSeq++
	a.ID = r.appSeq
	r.apps = append(r.apps, *a)
	return nil
}

func (r *ProfileRepo) ListApplications(_ context.Context) ([]profile.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]profile.LoanApplication(nil), r.apps...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProfileRepo) ListApplicationsByOfficer(_ context.Context, officerID uint) ([]profile.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profile.LoanApplication
	for _, a := range r.apps {
		if a.AssignedOfficerID == officerID {
			out = append(out, a)
		}
	}
	return out, nil
}
