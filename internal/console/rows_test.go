package console

import (
	"testing"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
)

func TestBuildLoanRows_JoinsBorrowerName(t *testing.T) {
	borrowers := []borrower.Borrower{{ID: 1, Name: "Ada Obi"}}
	loans := []loan.Loan{
		{ID: 10, BorrowerID: 1, PrincipalAmount: 1000, Status: loan.StatusActive},
		{ID: 11, BorrowerID: 99, PrincipalAmount: 500, Status: loan.StatusActive},
	}

	rows := BuildLoanRows(loans, borrowers)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].BorrowerName != "Ada Obi" {
		t.Fatalf("name join failed: %q", rows[0].BorrowerName)
	}
	if rows[1].BorrowerName != "Borrower #99" {
		t.Fatalf("missing borrower placeholder: %q", rows[1].BorrowerName)
	}
}

func TestBuildPaymentRows_TwoHopJoin(t *testing.T) {
	borrowers := []borrower.Borrower{{ID: 1, Name: "Ada Obi"}}
	loans := []loan.Loan{{ID: 10, BorrowerID: 1}}
	payments := []payment.Payment{{ID: 100, LoanID: 10, PaymentDay: 3, ActualAmount: 50}}

	rows := BuildPaymentRows(payments, loans, borrowers)
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].BorrowerName != "Ada Obi" {
		t.Fatalf("two-hop join failed: %q", rows[0].BorrowerName)
	}
	if rows[0].PaymentDay != 3 || rows[0].Actual != 50 {
		t.Fatalf("row fields: %+v", rows[0])
	}
}
