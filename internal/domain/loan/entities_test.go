package loan

import (
	"testing"
	"time"
)

func TestCalculateDerived(t *testing.T) {
	l := &Loan{
		PrincipalAmount:  1000,
		InterestRate:     10,
		Expenses:         50,
		LoanDurationDays: 15,
		StartDate:        "2026-01-05", // a Monday
	}
	if err := l.CalculateDerived(); err != nil {
		t.Fatalf("CalculateDerived: %v", err)
	}
	if l.InterestAmount != 100 {
		t.Errorf("InterestAmount = %v, want 100", l.InterestAmount)
	}
	if l.TotalAmount != 1150 {
		t.Errorf("TotalAmount = %v, want 1150", l.TotalAmount)
	}
	if want := 1150.0 / 15; l.DailyRepayment != want {
		t.Errorf("DailyRepayment = %v, want %v", l.DailyRepayment, want)
	}
	if l.ExpectedEndDate != "2026-01-19" {
		t.Errorf("ExpectedEndDate = %q, want 2026-01-19", l.ExpectedEndDate)
	}
}

func TestCalculateDerived_BadStartDate(t *testing.T) {
	l := &Loan{PrincipalAmount: 100, LoanDurationDays: 10, StartDate: "05/01/2026"}
	if err := l.CalculateDerived(); err == nil {
		t.Fatal("expected error for malformed start date")
	}
}

func TestSchedule_SkipsWeekends(t *testing.T) {
	l := &Loan{
		DailyRepayment:   100,
		LoanDurationDays: 7,
		StartDate:        "2026-01-02", // a Friday
	}
	sched, err := l.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(sched) != 7 {
		t.Fatalf("len(schedule) = %d, want 7", len(sched))
	}
	for _, e := range sched {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			t.Fatalf("entry %d: bad date %q", e.Day, e.Date)
		}
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			t.Errorf("entry %d falls on a weekend: %s", e.Day, e.Date)
		}
		if e.ExpectedAmount != 100 {
			t.Errorf("entry %d amount = %v, want 100", e.Day, e.ExpectedAmount)
		}
	}
	// Friday, then the weekend is skipped, so day 2 is Monday.
	if sched[0].Date != "2026-01-02" || sched[1].Date != "2026-01-05" {
		t.Errorf("first two dates = %s, %s; want 2026-01-02, 2026-01-05", sched[0].Date, sched[1].Date)
	}
}

func TestDeriveStatus(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return d
	}

	cases := []struct {
		name      string
		loan      Loan
		totalPaid float64
		today     string
		want      Status
	}{
		{"fully paid", Loan{TotalAmount: 500, ExpectedEndDate: "2026-02-01", Status: StatusActive}, 500, "2026-01-20", StatusCompleted},
		{"past end unpaid", Loan{TotalAmount: 500, ExpectedEndDate: "2026-01-10", Status: StatusActive}, 100, "2026-01-20", StatusOverdue},
		{"in progress", Loan{TotalAmount: 500, ExpectedEndDate: "2026-02-01", Status: StatusOverdue}, 100, "2026-01-20", StatusActive},
		{"defaulted stays defaulted", Loan{TotalAmount: 500, ExpectedEndDate: "2026-01-10", Status: StatusDefaulted}, 500, "2026-01-20", StatusDefaulted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := tc.loan
			l.DeriveStatus(tc.totalPaid, day(tc.today))
			if l.Status != tc.want {
				t.Errorf("Status = %s, want %s", l.Status, tc.want)
			}
		})
	}
}

func TestDeriveStatus_SetsActualEndDate(t *testing.T) {
	l := Loan{TotalAmount: 500, ExpectedEndDate: "2026-02-01", Status: StatusActive}
	today, _ := time.Parse(DateLayout, "2026-01-20")
	l.DeriveStatus(500, today)
	if l.ActualEndDate != "2026-01-20" {
		t.Errorf("ActualEndDate = %q, want 2026-01-20", l.ActualEndDate)
	}

	// A second derivation keeps the original completion date.
	later, _ := time.Parse(DateLayout, "2026-01-25")
	l.DeriveStatus(500, later)
	if l.ActualEndDate != "2026-01-20" {
		t.Errorf("ActualEndDate overwritten to %q", l.ActualEndDate)
	}
}
