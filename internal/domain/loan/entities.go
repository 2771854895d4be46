package loan

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusDefaulted Status = "defaulted"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusCompleted, StatusOverdue, StatusDefaulted:
		return true
	}
	return false
}

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

type Loan struct {
	ID               uint    `gorm:"primaryKey;column:id" json:"id"`
	BorrowerID       uint    `gorm:"index;not null" json:"borrower_id"`
	AccountOfficerID uint    `gorm:"index;not null" json:"account_officer_id"`
	PrincipalAmount  float64 `gorm:"type:decimal(10,2);not null" json:"principal_amount"`
	InterestRate     float64 `gorm:"type:decimal(5,2);default:0" json:"interest_rate"`
	InterestAmount   float64 `gorm:"type:decimal(10,2);default:0" json:"interest_amount"`
	Expenses         float64 `gorm:"type:decimal(10,2);default:0" json:"expenses"`
	TotalAmount      float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DailyRepayment   float64 `gorm:"type:decimal(10,2);not null" json:"daily_repayment"`
	LoanDurationDays int     `gorm:"default:15" json:"loan_duration_days"`
	// Calendar dates are stored and serialized as YYYY-MM-DD strings.
	StartDate       string    `gorm:"size:10;not null" json:"start_date"`
	ExpectedEndDate string    `gorm:"size:10;not null" json:"expected_end_date"`
	ActualEndDate   string    `gorm:"size:10" json:"actual_end_date,omitempty"`
	Status          Status    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Populated by the usecase, not a column.
	TotalPayments      float64 `gorm:"-" json:"total_payments"`
	OutstandingBalance float64 `gorm:"-" json:"outstanding_balance"`
}

func (Loan) TableName() string { return "loans" }

// CalculateDerived fills interest_amount, total_amount, daily_repayment and
// expected_end_date from principal, rate, expenses, duration and start date.
func (l *Loan) CalculateDerived() error {
	l.InterestAmount = l.PrincipalAmount * l.InterestRate / 100
	l.TotalAmount = l.PrincipalAmount + l.InterestAmount + l.Expenses
	if l.LoanDurationDays > 0 {
		l.DailyRepayment = l.TotalAmount / float64(l.LoanDurationDays)
	}
	start, err := time.Parse(DateLayout, l.StartDate)
	if err != nil {
		return err
	}
	l.ExpectedEndDate = start.AddDate(0, 0, l.LoanDurationDays-1).Format(DateLayout)
	return nil
}

type ScheduleEntry struct {
	Day            int     `json:"day"`
	Date           string  `json:"date"`
	ExpectedAmount float64 `json:"expected_amount"`
}

// Schedule returns one entry per repayment day, shifting entries that land on
// a weekend to the next business day.
func (l *Loan) Schedule() ([]ScheduleEntry, error) {
	start, err := time.Parse(DateLayout, l.StartDate)
	if err != nil {
		return nil, err
	}
	entries := make([]ScheduleEntry, 0, l.LoanDurationDays)
	cur := start
	for day := 1; day <= l.LoanDurationDays; day++ {
		for cur.Weekday() == time.Saturday || cur.Weekday() == time.Sunday {
			cur = cur.AddDate(0, 0, 1)
		}
		entries = append(entries, ScheduleEntry{
			Day:            day,
			Date:           cur.Format(DateLayout),
			ExpectedAmount: l.DailyRepayment,
		})
		cur = cur.AddDate(0, 0, 1)
	}
	return entries, nil
}

// IsOverdue reports whether the loan has passed its expected end date without
// completing.
func (l *Loan) IsOverdue(today time.Time) bool {
	end, err := time.Parse(DateLayout, l.ExpectedEndDate)
	if err != nil {
		return false
	}
	return today.After(end) && l.Status != StatusCompleted
}

// DeriveStatus recomputes the status from the amount collected so far. It
// never resurrects a defaulted loan.
func (l *Loan) DeriveStatus(totalPaid float64, today time.Time) {
	if l.Status == StatusDefaulted {
		return
	}
	switch {
	case totalPaid >= l.TotalAmount:
		l.Status = StatusCompleted
		if l.ActualEndDate == "" {
			l.ActualEndDate = today.Format(DateLayout)
		}
	case l.IsOverdue(today):
		l.Status = StatusOverdue
	default:
		l.Status = StatusActive
	}
}
