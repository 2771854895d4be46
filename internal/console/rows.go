package console

import (
	"fmt"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/user"
)

// NoRecordsMessage is the single-cell row rendered when a list is empty.
const NoRecordsMessage = "No records found"

type BorrowerRow struct {
	ID      uint
	Name    string
	Phone   string
	Address string
}

type LoanRow struct {
	ID             uint
	BorrowerName   string
	Principal      float64
	TotalAmount    float64
	TotalPaid      float64
	Balance        float64
	DailyRepayment float64
	StartDate      string
	Status         string
}

type PaymentRow struct {
	ID           uint
	LoanID       uint
	BorrowerName string
	PaymentDate  string
	PaymentDay   int
	Expected     float64
	Actual       float64
	Weekend      bool
	Notes        string
}

type UserRow struct {
	ID       uint
	Username string
	FullName string
	Role     string
	IsActive bool
}

// BuildBorrowerRows maps the borrower cache to table rows, preserving order.
func BuildBorrowerRows(borrowers []borrower.Borrower) []BorrowerRow {
	rows := make([]BorrowerRow, 0, len(borrowers))
	for _, b := range borrowers {
		rows = append(rows, BorrowerRow{ID: b.ID, Name: b.Name, Phone: b.Phone, Address: b.Address})
	}
	return rows
}

// BuildLoanRows joins each loan with its borrower's name. Loans whose
// borrower is missing from the cache keep a placeholder name.
func BuildLoanRows(loans []loan.Loan, borrowers []borrower.Borrower) []LoanRow {
	names := make(map[uint]string, len(borrowers))
	for _, b := range borrowers {
		names[b.ID] = b.Name
	}
	rows := make([]LoanRow, 0, len(loans))
	for _, l := range loans {
		name, ok := names[l.BorrowerID]
		if !ok {
			name = fmt.Sprintf("Borrower #%d", l.BorrowerID)
		}
		rows = append(rows, LoanRow{
			ID:             l.ID,
			BorrowerName:   name,
			Principal:      l.PrincipalAmount,
			TotalAmount:    l.TotalAmount,
			TotalPaid:      l.TotalPayments,
			Balance:        l.OutstandingBalance,
			DailyRepayment: l.DailyRepayment,
			StartDate:      l.StartDate,
			Status:         string(l.Status),
		})
	}
	return rows
}

// BuildPaymentRows joins payments with their loan's borrower name via the
// loan and borrower caches.
func BuildPaymentRows(payments []payment.Payment, loans []loan.Loan, borrowers []borrower.Borrower) []PaymentRow {
	names := make(map[uint]string, len(borrowers))
	for _, b := range borrowers {
		names[b.ID] = b.Name
	}
	loanBorrower := make(map[uint]uint, len(loans))
	for _, l := range loans {
		loanBorrower[l.ID] = l.BorrowerID
	}
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			ID:           p.ID,
			LoanID:       p.LoanID,
			BorrowerName: names[loanBorrower[p.LoanID]],
			PaymentDate:  p.PaymentDate,
			PaymentDay:   p.PaymentDay,
			Expected:     p.ExpectedAmount,
			Actual:       p.ActualAmount,
			Weekend:      p.IsWeekendAdjusted,
			Notes:        p.Notes,
		})
	}
	return rows
}

func BuildUserRows(users []user.User) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:       u.ID,
			Username: u.Username,
			FullName: u.FullName,
			Role:     string(u.Role),
			IsActive: u.IsActive,
		})
	}
	return rows
}
