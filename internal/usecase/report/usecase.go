package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/user"
)

var (
	ErrBadDate      = errors.New("Invalid date format. Use YYYY-MM-DD")
	ErrUserNotFound = errors.New("User not found")
)

type Usecase struct {
	users     user.Repository
	borrowers borrower.Repository
	loans     loan.Repository
	payments  payment.Repository
}

func New(users user.Repository, borrowers borrower.Repository, loans loan.Repository, payments payment.Repository) *Usecase {
	return &Usecase{users: users, borrowers: borrowers, loans: loans, payments: payments}
}

// CurrentMonth returns the first and last day of the month containing now.
func CurrentMonth(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(loan.DateLayout), last.Format(loan.DateLayout)
}

type DailySummary struct {
	TotalExpected  float64 `json:"total_expected"`
	TotalCollected float64 `json:"total_collected"`
	CollectionRate float64 `json:"collection_rate"`
	PaymentCount   int     `json:"payment_count"`
}

type OfficerBreakdown struct {
	OfficerID      uint    `json:"officer_id"`
	OfficerName    string  `json:"officer_name"`
	Expected       float64 `json:"expected"`
	Collected      float64 `json:"collected"`
	CollectionRate float64 `json:"collection_rate"`
	PaymentCount   int     `json:"payment_count"`
}

type DailyCollectionsReport struct {
	Date             string             `json:"date"`
	Summary          DailySummary       `json:"summary"`
	OfficerBreakdown []OfficerBreakdown `json:"officer_breakdown"`
	Payments         []payment.Payment  `json:"payments"`
}

// DailyCollections reports one day's payments, broken down by the account
// officer who manages each loan.
func (u *Usecase) DailyCollections(ctx context.Context, viewer *user.User, dateStr string) (*DailyCollectionsReport, error) {
	if dateStr == "" {
		dateStr = time.Now().Format(loan.DateLayout)
	}
	if _, err := time.Parse(loan.DateLayout, dateStr); err != nil {
		return nil, ErrBadDate
	}

	f := payment.ListFilter{PaymentDate: dateStr}
	if !viewer.IsAdmin() {
		f.AccountOfficerID = viewer.ID
	}
	pays, err := u.payments.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	rep := &DailyCollectionsReport{Date: dateStr, Payments: pays, OfficerBreakdown: []OfficerBreakdown{}}
	byOfficer := make(map[uint]*OfficerBreakdown)
	loanOfficer := make(map[uint]uint)
	for _, p := range pays {
		rep.Summary.TotalExpected += p.ExpectedAmount
		rep.Summary.TotalCollected += p.ActualAmount

		officerID, ok := loanOfficer[p.LoanID]
		if !ok {
			l, err := u.loans.GetByID(ctx, p.LoanID)
			if err != nil {
				return nil, fmt.Errorf("lookup loan: %w", err)
			}
			officerID = l.AccountOfficerID
			loanOfficer[p.LoanID] = officerID
		}
		entry := byOfficer[officerID]
		if entry == nil {
			name := ""
			if usr, err := u.users.GetByID(ctx, officerID); err == nil {
				name = usr.FullName
			}
			entry = &OfficerBreakdown{OfficerID: officerID, OfficerName: name}
			byOfficer[officerID] = entry
		}
		entry.Expected += p.ExpectedAmount
		entry.Collected += p.ActualAmount
		entry.PaymentCount++
	}
	rep.Summary.PaymentCount = len(pays)
	if rep.Summary.TotalExpected > 0 {
		rep.Summary.CollectionRate = rep.Summary.TotalCollected / rep.Summary.TotalExpected * 100
	}
	for _, entry := range byOfficer {
		if entry.Expected > 0 {
			entry.CollectionRate = entry.Collected / entry.Expected * 100
		}
		rep.OfficerBreakdown = append(rep.OfficerBreakdown, *entry)
	}
	sort.Slice(rep.OfficerBreakdown, func(i, j int) bool {
		return rep.OfficerBreakdown[i].OfficerID < rep.OfficerBreakdown[j].OfficerID
	})
	return rep, nil
}

type OutstandingLoan struct {
	loan.Loan
	BorrowerName string `json:"borrower_name"`
	DaysOverdue  int    `json:"days_overdue"`
}

type OutstandingSummary struct {
	TotalLoans          int     `json:"total_loans"`
	TotalOutstanding    float64 `json:"total_outstanding"`
	CurrentOutstanding  float64 `json:"current_outstanding"`
	OverdueOutstanding  float64 `json:"overdue_outstanding"`
	OverduePercentage   float64 `json:"overdue_percentage"`
}

type OutstandingLoansReport struct {
	GeneratedDate string             `json:"generated_date"`
	Summary       OutstandingSummary `json:"summary"`
	Loans         []OutstandingLoan  `json:"loans"`
}

// OutstandingLoans reports every open loan with its remaining balance, the
// largest balances first.
func (u *Usecase) OutstandingLoans(ctx context.Context, viewer *user.User) (*OutstandingLoansReport, error) {
	f := loan.ListFilter{Statuses: []loan.Status{loan.StatusActive, loan.StatusOverdue}}
	if !viewer.IsAdmin() {
		f.AccountOfficerID = viewer.ID
	}
	loans, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	today := time.Now()
	rep := &OutstandingLoansReport{
		GeneratedDate: today.Format(loan.DateLayout),
		Loans:         make([]OutstandingLoan, 0, len(loans)),
	}
	names := make(map[uint]string)
	for i := range loans {
		l := loans[i]
		paid, err := u.payments.SumActualByLoanID(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("sum payments: %w", err)
		}
		l.TotalPayments = paid
		l.OutstandingBalance = l.TotalAmount - paid

		rep.Summary.TotalOutstanding += l.OutstandingBalance
		if l.Status == loan.StatusOverdue {
			rep.Summary.OverdueOutstanding += l.OutstandingBalance
		} else {
			rep.Summary.CurrentOutstanding += l.OutstandingBalance
		}

		daysOverdue := 0
		if l.IsOverdue(today) {
			if end, err := time.Parse(loan.DateLayout, l.ExpectedEndDate); err == nil {
				daysOverdue = int(today.Sub(end).Hours() / 24)
			}
		}
		if _, ok := names[l.BorrowerID]; !ok {
			if b, err := u.borrowers.GetByID(ctx, l.BorrowerID); err == nil {
				names[l.BorrowerID] = b.Name
			}
		}
		rep.Loans = append(rep.Loans, OutstandingLoan{
			Loan:         l,
			BorrowerName: names[l.BorrowerID],
			DaysOverdue:  daysOverdue,
		})
	}
	rep.Summary.TotalLoans = len(loans)
	if rep.Summary.TotalOutstanding > 0 {
		rep.Summary.OverduePercentage = rep.Summary.OverdueOutstanding / rep.Summary.TotalOutstanding * 100
	}
	sort.Slice(rep.Loans, func(i, j int) bool {
		return rep.Loans[i].OutstandingBalance > rep.Loans[j].OutstandingBalance
	})
	return rep, nil
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ProfitLossReport struct {
	Period  Period `json:"period"`
	Revenue struct {
		PrincipalDisbursed float64 `json:"principal_disbursed"`
		InterestIncome     float64 `json:"interest_income"`
		FeeIncome          float64 `json:"fee_income"`
		GrossRevenue       float64 `json:"gross_revenue"`
	} `json:"revenue"`
	Expenses struct {
		SalaryExpenses float64 `json:"salary_expenses"`
		TotalExpenses  float64 `json:"total_expenses"`
	} `json:"expenses"`
	Profit struct {
		GrossProfit  float64 `json:"gross_profit"`
		NetProfit    float64 `json:"net_profit"`
		ProfitMargin float64 `json:"profit_margin"`
	} `json:"profit"`
	CashFlow struct {
		CollectionsReceived  float64 `json:"collections_received"`
		CollectionEfficiency float64 `json:"collection_efficiency"`
	} `json:"cash_flow"`
	LoanMetrics struct {
		LoansDisbursed  int     `json:"loans_disbursed"`
		AverageLoanSize float64 `json:"average_loan_size"`
	} `json:"loan_metrics"`
}

// ProfitLoss reports revenue and profit for loans disbursed in the period.
// There is no payroll data source, so expense lines stay at zero.
func (u *Usecase) ProfitLoss(ctx context.Context, startDate, endDate string) (*ProfitLossReport, error) {
	if startDate == "" || endDate == "" {
		startDate, endDate = CurrentMonth(time.Now())
	}
	if _, err := time.Parse(loan.DateLayout, startDate); err != nil {
		return nil, ErrBadDate
	}
	if _, err := time.Parse(loan.DateLayout, endDate); err != nil {
		return nil, ErrBadDate
	}

	loans, err := u.loans.List(ctx, loan.ListFilter{StartDateFrom: startDate, StartDateTo: endDate})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	collections, err := u.payments.SumActual(ctx, payment.ListFilter{PaymentDateFrom: startDate, PaymentDateTo: endDate})
	if err != nil {
		return nil, fmt.Errorf("sum collections: %w", err)
	}

	rep := &ProfitLossReport{Period: Period{StartDate: startDate, EndDate: endDate}}
	for _, l := range loans {
		rep.Revenue.PrincipalDisbursed += l.PrincipalAmount
		rep.Revenue.InterestIncome += l.InterestAmount
		rep.Revenue.FeeIncome += l.Expenses
	}
	rep.Revenue.GrossRevenue = rep.Revenue.InterestIncome + rep.Revenue.FeeIncome
	rep.Profit.GrossProfit = rep.Revenue.GrossRevenue
	rep.Profit.NetProfit = rep.Revenue.GrossRevenue - rep.Expenses.TotalExpenses
	if rep.Revenue.GrossRevenue > 0 {
		rep.Profit.ProfitMargin = rep.Profit.NetProfit / rep.Revenue.GrossRevenue * 100
	}
	rep.CashFlow.CollectionsReceived = collections
	if rep.Revenue.PrincipalDisbursed > 0 {
		rep.CashFlow.CollectionEfficiency = collections / rep.Revenue.PrincipalDisbursed * 100
	}
	rep.LoanMetrics.LoansDisbursed = len(loans)
	if len(loans) > 0 {
		rep.LoanMetrics.AverageLoanSize = rep.Revenue.PrincipalDisbursed / float64(len(loans))
	}
	return rep, nil
}

type LoanMetrics struct {
	TotalLoans     int     `json:"total_loans"`
	ActiveLoans    int     `json:"active_loans"`
	CompletedLoans int     `json:"completed_loans"`
	OverdueLoans   int     `json:"overdue_loans"`
	CompletionRate float64 `json:"completion_rate"`
	OverdueRate    float64 `json:"overdue_rate"`
}

type CollectionMetrics struct {
	PeriodCollections float64 `json:"period_collections"`
	PeriodExpected    float64 `json:"period_expected"`
	CollectionRate    float64 `json:"collection_rate"`
}

type PortfolioMetrics struct {
	TotalPortfolio       float64 `json:"total_portfolio"`
	OutstandingPortfolio float64 `json:"outstanding_portfolio"`
	AverageLoanSize      float64 `json:"average_loan_size"`
}

type OfficerPerformance struct {
	User              user.User         `json:"user"`
	LoanMetrics       LoanMetrics       `json:"loan_metrics"`
	CollectionMetrics CollectionMetrics `json:"collection_metrics"`
	PortfolioMetrics  PortfolioMetrics  `json:"portfolio_metrics"`
}

type PerformanceReport struct {
	Period          Period               `json:"period"`
	PerformanceData []OfficerPerformance `json:"performance_data"`
}

// Performance compares account officers over a period. Admins may narrow to a
// single user; officers always see just themselves.
func (u *Usecase) Performance(ctx context.Context, viewer *user.User, startDate, endDate string, userID uint) (*PerformanceReport, error) {
	if startDate == "" || endDate == "" {
		startDate, endDate = CurrentMonth(time.Now())
	}
	if _, err := time.Parse(loan.DateLayout, startDate); err != nil {
		return nil, ErrBadDate
	}
	if _, err := time.Parse(loan.DateLayout, endDate); err != nil {
		return nil, ErrBadDate
	}

	var subjects []user.User
	if viewer.IsAdmin() {
		if userID != 0 {
			usr, err := u.users.GetByID(ctx, userID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			if err != nil {
				return nil, fmt.Errorf("lookup user: %w", err)
			}
			subjects = []user.User{*usr}
		} else {
			officers, err := u.users.ListByRole(ctx, user.RoleAccountOfficer)
			if err != nil {
				return nil, fmt.Errorf("list officers: %w", err)
			}
			for _, o := range officers {
				if o.IsActive {
					subjects = append(subjects, o)
				}
			}
		}
	} else {
		subjects = []user.User{*viewer}
	}

	rep := &PerformanceReport{
		Period:          Period{StartDate: startDate, EndDate: endDate},
		PerformanceData: make([]OfficerPerformance, 0, len(subjects)),
	}
	for _, subject := range subjects {
		perf, err := u.officerPerformance(ctx, subject, startDate, endDate)
		if err != nil {
			return nil, err
		}
		rep.PerformanceData = append(rep.PerformanceData, *perf)
	}
	sort.Slice(rep.PerformanceData, func(i, j int) bool {
		return rep.PerformanceData[i].CollectionMetrics.CollectionRate > rep.PerformanceData[j].CollectionMetrics.CollectionRate
	})
	return rep, nil
}

func (u *Usecase) officerPerformance(ctx context.Context, subject user.User, startDate, endDate string) (*OfficerPerformance, error) {
	loans, err := u.loans.List(ctx, loan.ListFilter{AccountOfficerID: subject.ID})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	pays, err := u.payments.List(ctx, payment.ListFilter{
		AccountOfficerID: subject.ID,
		PaymentDateFrom:  startDate,
		PaymentDateTo:    endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	perf := &OfficerPerformance{User: subject}
	perf.LoanMetrics.TotalLoans = len(loans)
	for _, l := range loans {
		switch l.Status {
		case loan.StatusActive:
			perf.LoanMetrics.ActiveLoans++
		case loan.StatusCompleted:
			perf.LoanMetrics.CompletedLoans++
		case loan.StatusOverdue:
			perf.LoanMetrics.OverdueLoans++
		}
		perf.PortfolioMetrics.TotalPortfolio += l.PrincipalAmount
		if l.Status == loan.StatusActive || l.Status == loan.StatusOverdue {
			paid, err := u.payments.SumActualByLoanID(ctx, l.ID)
			if err != nil {
				return nil, fmt.Errorf("sum payments: %w", err)
			}
			perf.PortfolioMetrics.OutstandingPortfolio += l.TotalAmount - paid
		}
	}
	if perf.LoanMetrics.TotalLoans > 0 {
		n := float64(perf.LoanMetrics.TotalLoans)
		perf.LoanMetrics.CompletionRate = float64(perf.LoanMetrics.CompletedLoans) / n * 100
		perf.LoanMetrics.OverdueRate = float64(perf.LoanMetrics.OverdueLoans) / n * 100
		perf.PortfolioMetrics.AverageLoanSize = perf.PortfolioMetrics.TotalPortfolio / n
	}
	for _, p := range pays {
		perf.CollectionMetrics.PeriodCollections += p.ActualAmount
		perf.CollectionMetrics.PeriodExpected += p.ExpectedAmount
	}
	if perf.CollectionMetrics.PeriodExpected > 0 {
		perf.CollectionMetrics.CollectionRate = perf.CollectionMetrics.PeriodCollections / perf.CollectionMetrics.PeriodExpected * 100
	}
	return perf, nil
}

type DashboardStats struct {
	TotalUsers       int64   `json:"total_users"`
	TotalBorrowers   int64   `json:"total_borrowers"`
	TotalLoans       int64   `json:"total_loans"`
	ActiveLoans      int64   `json:"active_loans"`
	CompletedLoans   int64   `json:"completed_loans"`
	OverdueLoans     int64   `json:"overdue_loans"`
	TotalPrincipal   float64 `json:"total_principal"`
	TotalCollections float64 `json:"total_collections"`
	TodayCollections float64 `json:"today_collections"`
	MonthCollections float64 `json:"month_collections"`
}

// Dashboard aggregates the headline numbers for the admin landing view.
func (u *Usecase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = u.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalBorrowers, err = u.borrowers.Count(ctx); err != nil {
		return nil, fmt.Errorf("count borrowers: %w", err)
	}
	if stats.TotalLoans, err = u.loans.Count(ctx); err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}
	if stats.ActiveLoans, err = u.loans.CountByStatus(ctx, loan.StatusActive); err != nil {
		return nil, fmt.Errorf("count active loans: %w", err)
	}
	if stats.CompletedLoans, err = u.loans.CountByStatus(ctx, loan.StatusCompleted); err != nil {
		return nil, fmt.Errorf("count completed loans: %w", err)
	}
	if stats.OverdueLoans, err = u.loans.CountByStatus(ctx, loan.StatusOverdue); err != nil {
		return nil, fmt.Errorf("count overdue loans: %w", err)
	}
	if stats.TotalPrincipal, err = u.loans.SumPrincipal(ctx); err != nil {
		return nil, fmt.Errorf("sum principal: %w", err)
	}
	if stats.TotalCollections, err = u.payments.SumActual(ctx, payment.ListFilter{}); err != nil {
		return nil, fmt.Errorf("sum collections: %w", err)
	}
	now := time.Now()
	today := now.Format(loan.DateLayout)
	if stats.TodayCollections, err = u.payments.SumActual(ctx, payment.ListFilter{PaymentDate: today}); err != nil {
		return nil, fmt.Errorf("sum today collections: %w", err)
	}
	monthStart, monthEnd := CurrentMonth(now)
	if stats.MonthCollections, err = u.payments.SumActual(ctx, payment.ListFilter{PaymentDateFrom: monthStart, PaymentDateTo: monthEnd}); err != nil {
		return nil, fmt.Errorf("sum month collections: %w", err)
	}
	return &stats, nil
}
