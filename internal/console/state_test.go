package console

import (
	"errors"
	"testing"

	"lookman/internal/domain/profile"
)

func TestModal_Lifecycle(t *testing.T) {
	var m Modal
	if err := m.Open("create-borrower"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := m.BeginSubmit(); err != nil {
		t.Fatalf("begin submit: %v", err)
	}
	if m.Phase != ModalSubmitting {
		t.Fatalf("phase = %v, want submitting", m.Phase)
	}
	m.Close()
	if m.Phase != ModalClosed || m.Name != "" {
		t.Fatalf("close left state: %+v", m)
	}
}

func TestModal_BeginSubmitRequiresOpen(t *testing.T) {
	var m Modal
	if err := m.BeginSubmit(); !errors.Is(err, ErrModalNotOpen) {
		t.Fatalf("err = %v, want ErrModalNotOpen", err)
	}
}

func TestModal_SecondSubmitRefused(t *testing.T) {
	var m Modal
	m.Open("record-payment")
	m.BeginSubmit()
	if err := m.BeginSubmit(); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("err = %v, want ErrSubmitInProgress", err)
	}
}

func TestModal_EndSubmitReopensForm(t *testing.T) {
	var m Modal
	m.Open("create-loan")
	m.BeginSubmit()
	m.EndSubmit()
	if m.Phase != ModalOpen {
		t.Fatalf("phase = %v, want open", m.Phase)
	}
	if err := m.BeginSubmit(); err != nil {
		t.Fatalf("resubmit after failure: %v", err)
	}
}

func TestViewState_StartMutationBlocksConcurrentSubmit(t *testing.T) {
	vs := &ViewState{}
	if err := vs.StartMutation("create-borrower"); err != nil {
		t.Fatalf("first mutation: %v", err)
	}
	if err := vs.StartMutation("create-borrower"); err == nil {
		t.Fatal("second mutation started while first was in flight")
	}
	vs.FinishMutation()
	if err := vs.StartMutation("delete-borrower"); err != nil {
		t.Fatalf("mutation after finish: %v", err)
	}
}

func TestViewState_TakeFlashClears(t *testing.T) {
	vs := &ViewState{}
	vs.SetFlash("Saved")
	vs.SetFlashError("Oops")
	msg, errMsg := vs.TakeFlash()
	if msg != "Saved" || errMsg != "Oops" {
		t.Fatalf("got %q/%q", msg, errMsg)
	}
	msg, errMsg = vs.TakeFlash()
	if msg != "" || errMsg != "" {
		t.Fatalf("flash not cleared: %q/%q", msg, errMsg)
	}
}

func TestNewProfileState_MissingProfileIsNewStub(t *testing.T) {
	ps := NewProfileState(7, nil)
	if !ps.IsNew {
		t.Fatal("missing profile should be marked new")
	}
	if ps.Profile.BorrowerID != 7 {
		t.Fatalf("stub borrower id = %d, want 7", ps.Profile.BorrowerID)
	}
}

func TestNewProfileState_ExistingProfile(t *testing.T) {
	p := &profile.BorrowerProfile{BorrowerID: 7, FullName: "Ada Obi"}
	ps := NewProfileState(7, p)
	if ps.IsNew {
		t.Fatal("existing profile marked new")
	}
	if ps.Profile.FullName != "Ada Obi" {
		t.Fatalf("profile not carried over: %+v", ps.Profile)
	}
}

func TestApplyVerification_BackfillsOnlyEmptyFields(t *testing.T) {
	ps := NewProfileState(1, &profile.BorrowerProfile{
		BorrowerID: 1,
		FullName:   "Ada Obi",
	})
	ps.ApplyVerification("bvn", map[string]string{
		"name":          "ADA OBI NKECHI",
		"date_of_birth": "1990-04-12",
		"phone":         "08011111111",
	})

	if ps.Profile.FullName != "Ada Obi" {
		t.Fatalf("filled name overwritten: %q", ps.Profile.FullName)
	}
	if ps.Profile.DateOfBirth != "1990-04-12" {
		t.Fatalf("empty date not backfilled: %q", ps.Profile.DateOfBirth)
	}
	if ps.Profile.PhoneNumber != "08011111111" {
		t.Fatalf("empty phone not backfilled: %q", ps.Profile.PhoneNumber)
	}
	if ps.Profile.BVNVerificationStatus != profile.VerificationVerified {
		t.Fatalf("bvn status = %q, want verified", ps.Profile.BVNVerificationStatus)
	}
	if ps.Profile.IDVerificationStatus == profile.VerificationVerified {
		t.Fatal("nin status flipped by bvn verification")
	}
}

func TestApplyVerification_NINFlipsIDStatus(t *testing.T) {
	ps := NewProfileState(1, nil)
	ps.ApplyVerification("nin", map[string]string{"name": "Ada Obi"})
	if ps.Profile.IDVerificationStatus != profile.VerificationVerified {
		t.Fatalf("id status = %q, want verified", ps.Profile.IDVerificationStatus)
	}
}

func TestStatusBadge(t *testing.T) {
	cases := map[profile.VerificationStatus]string{
		profile.VerificationVerified: "badge-success",
		profile.VerificationRejected: "badge-danger",
		profile.VerificationPending:  "badge-pending",
		"":                           "badge-pending",
	}
	for status, want := range cases {
		if got := StatusBadge(status); got != want {
			t.Errorf("StatusBadge(%q) = %q, want %q", status, got, want)
		}
	}
}
