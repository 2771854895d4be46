package console

import (
	"errors"
	"sync"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/profile"
	"lookman/internal/domain/user"
)

// ModalPhase is the modal lifecycle: closed -> open -> submitting -> closed.
type ModalPhase int

const (
	ModalClosed ModalPhase = iota
	ModalOpen
	ModalSubmitting
)

var (
	ErrModalNotOpen       = errors.New("modal is not open")
	ErrSubmitInProgress   = errors.New("a submit is already in progress")
	ErrModalAlreadyOpened = errors.New("another modal is open")
)

// Modal is the explicit state machine behind every console dialog. BeginSubmit
// refuses a second transition, which is what blocks double submits.
type Modal struct {
	Phase ModalPhase
	Name  string
}

func (m *Modal) Open(name string) error {
	if m.Phase != ModalClosed {
		return ErrModalAlreadyOpened
	}
	m.Phase = ModalOpen
	m.Name = name
	return nil
}

func (m *Modal) BeginSubmit() error {
	switch m.Phase {
	case ModalSubmitting:
		return ErrSubmitInProgress
	case ModalClosed:
		return ErrModalNotOpen
	}
	m.Phase = ModalSubmitting
	return nil
}

// EndSubmit returns the modal to open after a failed submit so the form can
// be corrected and resent.
func (m *Modal) EndSubmit() {
	if m.Phase == ModalSubmitting {
		m.Phase = ModalOpen
	}
}

func (m *Modal) Close() {
	m.Phase = ModalClosed
	m.Name = ""
}

// ViewState is the per-session console state: the signed-in user, the entity
// caches the list views filter over, flash messages and the active modal.
type ViewState struct {
	mu sync.Mutex

	Token      string
	User       user.User
	FirstLogin bool

	Borrowers []borrower.Borrower
	Loans     []loan.Loan
	Payments  []payment.Payment
	Users     []user.User

	Flash      string
	FlashError string

	Modal   Modal
	Report  ReportState
	Profile ProfileState
}

// states maps console session tokens to their view state.
type stateRegistry struct {
	mu     sync.Mutex
	states map[string]*ViewState
}

func newStateRegistry() *stateRegistry {
	return &stateRegistry{states: make(map[string]*ViewState)}
}

func (r *stateRegistry) get(token string) (*ViewState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vs, ok := r.states[token]
	return vs, ok
}

func (r *stateRegistry) put(token string, vs *ViewState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[token] = vs
}

func (r *stateRegistry) drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, token)
}

// StartMutation walks the modal machine to submitting. A session with a
// submit already in flight gets an error instead of a second request.
func (vs *ViewState) StartMutation(name string) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if err := vs.Modal.Open(name); err != nil {
		return err
	}
	return vs.Modal.BeginSubmit()
}

// FinishMutation closes the modal whatever the submit outcome was.
func (vs *ViewState) FinishMutation() {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.Modal.Close()
}

// TakeFlash returns and clears the pending flash messages.
func (vs *ViewState) TakeFlash() (msg, errMsg string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	msg, errMsg = vs.Flash, vs.FlashError
	vs.Flash, vs.FlashError = "", ""
	return msg, errMsg
}

func (vs *ViewState) SetFlash(msg string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.Flash = msg
}

func (vs *ViewState) SetFlashError(msg string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.FlashError = msg
}

// ReplaceBorrowers swaps the borrower cache wholesale; list loads always
// replace, never merge.
func (vs *ViewState) ReplaceBorrowers(bs []borrower.Borrower) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.Borrowers = bs
}

func (vs *ViewState) ReplaceLoans(ls []loan.Loan) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.Loans = ls
}

func (vs *ViewState) ReplacePayments(ps []payment.Payment) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.Payments = ps
}

func (vs *ViewState) ReplaceUsers(us []user.User) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.Users = us
}

// ProfileState tracks the borrower profile being edited. A missing profile is
// not an error: the state holds a stub with just the borrower reference and
// IsNew set, and the first save creates it.
type ProfileState struct {
	BorrowerID uint
	IsNew      bool
	Profile    profile.BorrowerProfile
}

func NewProfileState(borrowerID uint, p *profile.BorrowerProfile) ProfileState {
	if p == nil {
		return ProfileState{
			BorrowerID: borrowerID,
			IsNew:      true,
			Profile:    profile.BorrowerProfile{BorrowerID: borrowerID},
		}
	}
	return ProfileState{BorrowerID: borrowerID, Profile: *p}
}

// ApplyVerification merges verification backfill data into the profile,
// filling only fields that are still empty, and flips the matching status.
func (ps *ProfileState) ApplyVerification(kind string, data map[string]string) {
	p := &ps.Profile
	if v := data["name"]; v != "" && p.FullName == "" {
		p.FullName = v
	}
	if v := data["date_of_birth"]; v != "" && p.DateOfBirth == "" {
		p.DateOfBirth = v
	}
	if v := data["phone"]; v != "" && p.PhoneNumber == "" {
		p.PhoneNumber = v
	}
	if v := data["address"]; v != "" && p.Address == "" {
		p.Address = v
	}
	switch kind {
	case "bvn":
		p.BVNVerificationStatus = profile.VerificationVerified
	case "nin":
		p.IDVerificationStatus = profile.VerificationVerified
	}
}

// StatusBadge maps a verification status to the badge style used in the
// templates.
func StatusBadge(s profile.VerificationStatus) string {
	switch s {
	case profile.VerificationVerified:
		return "badge-success"
	case profile.VerificationRejected:
		return "badge-danger"
	default:
		return "badge-pending"
	}
}
