package console

import (
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"lookman/internal/domain/profile"
	"lookman/internal/domain/user"
	profileuc "lookman/internal/usecase/profile"
	"lookman/internal/usecase/report"
	"lookman/pkg/password"
)

//go:embed templates/*.html
var templateFS embed.FS

// sessionCookie holds the API session token on the console's own domain.
const sessionCookie = "console_session"

type Server struct {
	api    *Client
	states *stateRegistry
	tmpl   *template.Template
}

func NewServer(api *Client) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{api: api, states: newStateRegistry(), tmpl: tmpl}, nil
}

type renderer struct{ t *template.Template }

func (r renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

func (s *Server) Register(e *echo.Echo) {
	e.Renderer = renderer{s.tmpl}

	e.GET("/login", s.loginPage)
	e.POST("/login", s.login)
	e.POST("/logout", s.logout)

	g := e.Group("", s.requireSession)
	g.GET("/", s.dashboard)
	g.GET("/borrowers", s.borrowers)
	g.POST("/borrowers", s.createBorrower)
	g.POST("/borrowers/:id/delete", s.deleteBorrower)
	g.GET("/borrowers/export", s.exportBorrowers)
	g.GET("/loans", s.loans)
	g.POST("/loans", s.createLoan)
	g.GET("/loans/:id", s.loanDetail)
	g.POST("/loans/:id/status", s.updateLoanStatus)
	g.GET("/payments", s.payments)
	g.POST("/payments", s.recordPayment)
	g.GET("/reports", s.reportsPage)
	g.POST("/reports", s.generateReport)
	g.GET("/users", s.users)
	g.POST("/users", s.createUser)
	g.POST("/users/:id/toggle", s.toggleUser)
	g.POST("/users/:id/delete", s.deleteUser)
	g.GET("/profile/:id", s.profilePage)
	g.POST("/profile/:id/save", s.saveProfile)
	g.POST("/profile/:id/verify", s.verifyProfile)
	g.POST("/profile/:id/documents", s.uploadDocument)
	g.GET("/change-password", s.changePasswordPage)
	g.POST("/change-password", s.changePassword)
}

// --- session gate ---

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		vs, ok := s.states.get(cookie.Value)
		if !ok {
			// console restarted or state evicted; revalidate with the API
			res, err := s.api.CheckAuth(c.Request().Context(), cookie.Value)
			if err != nil {
				return s.toLogin(c)
			}
			vs = &ViewState{Token: cookie.Value, User: res.User, FirstLogin: res.FirstLogin}
			s.states.put(cookie.Value, vs)
		}
		c.Set("vs", vs)
		return next(c)
	}
}

func state(c echo.Context) *ViewState {
	vs, _ := c.Get("vs").(*ViewState)
	return vs
}

func (s *Server) toLogin(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.Redirect(http.StatusSeeOther, "/login")
}

// fail turns a client error into a flash and a redirect; an expired API
// session goes back through the login gate instead.
func (s *Server) fail(c echo.Context, vs *ViewState, action string, err error, redirect string) error {
	if errors.Is(err, ErrUnauthorized) {
		s.states.drop(vs.Token)
		return s.toLogin(c)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		vs.SetFlashError(apiErr.Message)
	} else {
		vs.SetFlashError("Failed to " + action)
	}
	return c.Redirect(http.StatusSeeOther, redirect)
}

// mutate runs one modal submit: open -> submitting -> closed, with a second
// concurrent submit refused.
func (s *Server) mutate(vs *ViewState, name string, fn func() (string, error)) error {
	if err := vs.StartMutation(name); err != nil {
		return err
	}
	defer vs.FinishMutation()
	msg, err := fn()
	if err != nil {
		return err
	}
	vs.SetFlash(msg)
	return nil
}

// --- shared page data ---

type pageData struct {
	Username   string
	IsAdmin    bool
	Flash      string
	FlashError string
	NoRecords  string
}

func basePage(vs *ViewState) pageData {
	msg, errMsg := vs.TakeFlash()
	return pageData{
		Username:   vs.User.Username,
		IsAdmin:    vs.User.Role == user.RoleAdmin,
		Flash:      msg,
		FlashError: errMsg,
		NoRecords:  NoRecordsMessage,
	}
}

var loanStatuses = []string{"active", "completed", "overdue", "defaulted"}

// --- auth ---

type loginPageData struct {
	Flash      string
	FlashError string
}

func (s *Server) loginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPageData{})
}

func (s *Server) login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	pw := c.FormValue("password")

	res, err := s.api.Login(c.Request().Context(), username, pw)
	if err != nil {
		msg := "Failed to log in"
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		return c.Render(http.StatusUnauthorized, "login.html", loginPageData{FlashError: msg})
	}

	vs := &ViewState{Token: res.Token, User: res.User, FirstLogin: res.FirstLogin}
	if res.FirstLogin {
		vs.SetFlash("First login: please change your password")
	} else {
		vs.SetFlash(res.Message)
	}
	s.states.put(res.Token, vs)
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: res.Token, Path: "/", HttpOnly: true})
	if res.FirstLogin {
		return c.Redirect(http.StatusSeeOther, "/change-password")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		_ = s.api.Logout(c.Request().Context(), cookie.Value)
		s.states.drop(cookie.Value)
	}
	return s.toLogin(c)
}

// --- dashboard ---

type dashboardData struct {
	pageData
	Stats       *report.DashboardStats
	Today       TodayPayments
	RecentLoans []LoanRow
}

func (s *Server) dashboard(c echo.Context) error {
	vs := state(c)
	ctx := c.Request().Context()
	data := dashboardData{pageData: basePage(vs)}

	if data.IsAdmin {
		stats, err := s.api.DashboardStats(ctx, vs.Token)
		if err != nil {
			return s.fail(c, vs, "load dashboard stats", err, "/login")
		}
		data.Stats = stats
	}

	today, err := s.api.TodayPayments(ctx, vs.Token)
	if err != nil {
		return s.fail(c, vs, "load today's payments", err, "/login")
	}
	data.Today = *today

	loans, err := s.api.ListLoans(ctx, vs.Token)
	if err != nil {
		return s.fail(c, vs, "load loans", err, "/login")
	}
	borrowers, err := s.api.ListBorrowers(ctx, vs.Token)
	if err != nil {
		return s.fail(c, vs, "load borrowers", err, "/login")
	}
	rows := BuildLoanRows(loans, borrowers)
	if len(rows) > 5 {
		rows = rows[:5]
	}
	data.RecentLoans = rows
	return c.Render(http.StatusOK, "dashboard.html", data)
}

// --- borrowers ---

type borrowersData struct {
	pageData
	Query string
	Rows  []BorrowerRow
}

func (s *Server) loadBorrowers(c echo.Context, vs *ViewState) error {
	bs, err := s.api.ListBorrowers(c.Request().Context(), vs.Token)
	if err != nil {
		return err
	}
	vs.ReplaceBorrowers(bs)
	return nil
}

func (s *Server) borrowers(c echo.Context) error {
	vs := state(c)
	if err := s.loadBorrowers(c, vs); err != nil {
		return s.fail(c, vs, "load borrowers", err, "/")
	}
	q := c.QueryParam("q")
	data := borrowersData{
		pageData: basePage(vs),
		Query:    q,
		Rows:     FilterBorrowers(BuildBorrowerRows(vs.Borrowers), q),
	}
	return c.Render(http.StatusOK, "borrowers.html", data)
}

func (s *Server) createBorrower(c echo.Context) error {
	vs := state(c)
	name := strings.TrimSpace(c.FormValue("name"))
	if len(name) < 2 {
		vs.SetFlashError("Borrower name must be at least 2 characters")
		return c.Redirect(http.StatusSeeOther, "/borrowers")
	}
	err := s.mutate(vs, "create-borrower", func() (string, error) {
		return s.api.CreateBorrower(c.Request().Context(), vs.Token, BorrowerInput{
			Name:    name,
			Phone:   strings.TrimSpace(c.FormValue("phone")),
			Address: strings.TrimSpace(c.FormValue("address")),
		})
	})
	if err != nil {
		return s.fail(c, vs, "create borrower", err, "/borrowers")
	}
	return c.Redirect(http.StatusSeeOther, "/borrowers")
}

func (s *Server) deleteBorrower(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "delete borrower", err, "/borrowers")
	}
	err = s.mutate(vs, "delete-borrower", func() (string, error) {
		return s.api.DeleteBorrower(c.Request().Context(), vs.Token, id)
	})
	if err != nil {
		return s.fail(c, vs, "delete borrower", err, "/borrowers")
	}
	return c.Redirect(http.StatusSeeOther, "/borrowers")
}

func (s *Server) exportBorrowers(c echo.Context) error {
	vs := state(c)
	if err := s.loadBorrowers(c, vs); err != nil {
		return s.fail(c, vs, "export borrowers", err, "/borrowers")
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="borrowers.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return WriteBorrowersCSV(c.Response(), BuildBorrowerRows(vs.Borrowers))
}

// --- loans ---

type loansData struct {
	pageData
	Query     string
	Status    string
	Statuses  []string
	Borrowers []BorrowerRow
	Rows      []LoanRow
}

func (s *Server) loadLoans(c echo.Context, vs *ViewState) error {
	ls, err := s.api.ListLoans(c.Request().Context(), vs.Token)
	if err != nil {
		return err
	}
	vs.ReplaceLoans(ls)
	return s.loadBorrowers(c, vs)
}

func (s *Server) loans(c echo.Context) error {
	vs := state(c)
	if err := s.loadLoans(c, vs); err != nil {
		return s.fail(c, vs, "load loans", err, "/")
	}
	q, status := c.QueryParam("q"), c.QueryParam("status")
	data := loansData{
		pageData:  basePage(vs),
		Query:     q,
		Status:    status,
		Statuses:  loanStatuses,
		Borrowers: BuildBorrowerRows(vs.Borrowers),
		Rows:      FilterLoans(BuildLoanRows(vs.Loans, vs.Borrowers), q, status),
	}
	return c.Render(http.StatusOK, "loans.html", data)
}

func (s *Server) createLoan(c echo.Context) error {
	vs := state(c)

	borrowerID, err := formUint(c, "borrower_id")
	if err != nil || borrowerID == 0 {
		vs.SetFlashError("Please select a borrower")
		return c.Redirect(http.StatusSeeOther, "/loans")
	}
	principal, _ := strconv.ParseFloat(c.FormValue("principal_amount"), 64)
	if principal <= 0 {
		vs.SetFlashError("Principal amount must be greater than 0")
		return c.Redirect(http.StatusSeeOther, "/loans")
	}

	in := LoanInput{
		BorrowerID:      borrowerID,
		PrincipalAmount: principal,
		StartDate:       strings.TrimSpace(c.FormValue("start_date")),
	}
	if v := c.FormValue("interest_rate"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			in.InterestRate = &rate
		}
	}
	if v := c.FormValue("expenses"); v != "" {
		in.Expenses, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.FormValue("loan_duration_days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			in.DurationDays = &days
		}
	}

	err = s.mutate(vs, "create-loan", func() (string, error) {
		return s.api.CreateLoan(c.Request().Context(), vs.Token, in)
	})
	if err != nil {
		return s.fail(c, vs, "create loan", err, "/loans")
	}
	return c.Redirect(http.StatusSeeOther, "/loans")
}

type loanDetailData struct {
	pageData
	Detail   LoanDetail
	Statuses []string
}

func (s *Server) loanDetail(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "load loan", err, "/loans")
	}
	d, err := s.api.GetLoan(c.Request().Context(), vs.Token, id)
	if err != nil {
		return s.fail(c, vs, "load loan", err, "/loans")
	}
	data := loanDetailData{pageData: basePage(vs), Detail: *d, Statuses: loanStatuses}
	return c.Render(http.StatusOK, "loan_detail.html", data)
}

func (s *Server) updateLoanStatus(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "update loan status", err, "/loans")
	}
	redirect := "/loans/" + itoa(id)
	err = s.mutate(vs, "update-loan-status", func() (string, error) {
		return s.api.UpdateLoanStatus(c.Request().Context(), vs.Token, id, c.FormValue("status"))
	})
	if err != nil {
		return s.fail(c, vs, "update loan status", err, redirect)
	}
	return c.Redirect(http.StatusSeeOther, redirect)
}

// --- payments ---

type paymentsData struct {
	pageData
	Query       string
	Date        string
	LoanOptions []LoanRow
	Rows        []PaymentRow
}

func (s *Server) payments(c echo.Context) error {
	vs := state(c)
	ps, err := s.api.ListPayments(c.Request().Context(), vs.Token)
	if err != nil {
		return s.fail(c, vs, "load payments", err, "/")
	}
	vs.ReplacePayments(ps)
	if err := s.loadLoans(c, vs); err != nil {
		return s.fail(c, vs, "load loans", err, "/")
	}

	q, date := c.QueryParam("q"), c.QueryParam("date")
	data := paymentsData{
		pageData:    basePage(vs),
		Query:       q,
		Date:        date,
		LoanOptions: BuildLoanRows(vs.Loans, vs.Borrowers),
		Rows:        FilterPayments(BuildPaymentRows(vs.Payments, vs.Loans, vs.Borrowers), q, date),
	}
	return c.Render(http.StatusOK, "payments.html", data)
}

func (s *Server) recordPayment(c echo.Context) error {
	vs := state(c)

	loanID, err := formUint(c, "loan_id")
	if err != nil || loanID == 0 {
		vs.SetFlashError("Please select a loan")
		return c.Redirect(http.StatusSeeOther, "/payments")
	}
	amount, err := strconv.ParseFloat(c.FormValue("actual_amount"), 64)
	if err != nil || amount < 0 {
		vs.SetFlashError("Payment amount must be 0 or greater")
		return c.Redirect(http.StatusSeeOther, "/payments")
	}
	day, err := strconv.Atoi(c.FormValue("payment_day"))
	if err != nil || day < 1 {
		vs.SetFlashError("Payment day must be 1 or greater")
		return c.Redirect(http.StatusSeeOther, "/payments")
	}
	date := strings.TrimSpace(c.FormValue("payment_date"))
	if date == "" {
		vs.SetFlashError("Payment date is required")
		return c.Redirect(http.StatusSeeOther, "/payments")
	}

	err = s.mutate(vs, "record-payment", func() (string, error) {
		return s.api.RecordPayment(c.Request().Context(), vs.Token, PaymentInput{
			LoanID:       loanID,
			PaymentDate:  date,
			ActualAmount: amount,
			PaymentDay:   day,
			Notes:        strings.TrimSpace(c.FormValue("notes")),
		})
	})
	if err != nil {
		return s.fail(c, vs, "record payment", err, "/payments")
	}
	return c.Redirect(http.StatusSeeOther, "/payments")
}

// --- reports ---

type reportsData struct {
	pageData
	State       ReportState
	Daily       *report.DailyCollectionsReport
	Outstanding *report.OutstandingLoansReport
	ProfitLoss  *report.ProfitLossReport
	Performance *report.PerformanceReport
}

func (s *Server) reportsPage(c echo.Context) error {
	vs := state(c)
	return c.Render(http.StatusOK, "reports.html", reportsData{
		pageData: basePage(vs),
		State:    vs.Report,
	})
}

func (s *Server) generateReport(c echo.Context) error {
	vs := state(c)

	st, err := SelectReport(c.FormValue("type"), time.Now())
	if err != nil {
		vs.SetFlashError(err.Error())
		return c.Redirect(http.StatusSeeOther, "/reports")
	}
	if v := strings.TrimSpace(c.FormValue("start_date")); v != "" {
		st.StartDate = v
	}
	if v := strings.TrimSpace(c.FormValue("end_date")); v != "" {
		st.EndDate = v
	}
	if v := c.FormValue("user_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			st.UserID = uint(n)
		}
	}
	vs.mu.Lock()
	vs.Report = st
	vs.mu.Unlock()

	ctx := c.Request().Context()
	data := reportsData{pageData: basePage(vs), State: st}
	switch st.Type {
	case ReportDailyCollections:
		data.Daily, err = s.api.DailyCollections(ctx, vs.Token, st.EndDate)
	case ReportOutstandingLoans:
		data.Outstanding, err = s.api.OutstandingLoans(ctx, vs.Token)
	case ReportProfitLoss:
		data.ProfitLoss, err = s.api.ProfitLoss(ctx, vs.Token, st.StartDate, st.EndDate)
	case ReportPerformance:
		data.Performance, err = s.api.Performance(ctx, vs.Token, st.StartDate, st.EndDate, st.UserID)
	}
	if err != nil {
		return s.fail(c, vs, "generate report", err, "/reports")
	}
	return c.Render(http.StatusOK, "reports.html", data)
}

// --- users (admin) ---

type usersData struct {
	pageData
	Query string
	Role  string
	Rows  []UserRow
}

func (s *Server) users(c echo.Context) error {
	vs := state(c)
	if vs.User.Role != user.RoleAdmin {
		vs.SetFlashError("Admin access required")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	us, err := s.api.ListUsers(c.Request().Context(), vs.Token)
	if err != nil {
		return s.fail(c, vs, "load users", err, "/")
	}
	vs.ReplaceUsers(us)

	q, role := c.QueryParam("q"), c.QueryParam("role")
	data := usersData{
		pageData: basePage(vs),
		Query:    q,
		Role:     role,
		Rows:     FilterUsers(BuildUserRows(vs.Users), q, role),
	}
	return c.Render(http.StatusOK, "users.html", data)
}

func (s *Server) createUser(c echo.Context) error {
	vs := state(c)
	pw := c.FormValue("password")
	if err := password.Validate(pw, pw); err != nil {
		vs.SetFlashError(err.Error())
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	err := s.mutate(vs, "create-user", func() (string, error) {
		return s.api.CreateUser(c.Request().Context(), vs.Token, UserInput{
			Username: strings.TrimSpace(c.FormValue("username")),
			Password: pw,
			FullName: strings.TrimSpace(c.FormValue("full_name")),
			Email:    strings.TrimSpace(c.FormValue("email")),
			Phone:    strings.TrimSpace(c.FormValue("phone")),
			Role:     c.FormValue("role"),
		})
	})
	if err != nil {
		return s.fail(c, vs, "create user", err, "/users")
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}

// toggleUser flips IsActive. Deactivating yourself is refused before any
// request goes out.
func (s *Server) toggleUser(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "update user", err, "/users")
	}
	if id == vs.User.ID {
		vs.SetFlashError("Cannot deactivate your own account")
		return c.Redirect(http.StatusSeeOther, "/users")
	}

	var active *bool
	vs.mu.Lock()
	for _, u := range vs.Users {
		if u.ID == id {
			v := !u.IsActive
			active = &v
		}
	}
	vs.mu.Unlock()
	if active == nil {
		vs.SetFlashError("User not found")
		return c.Redirect(http.StatusSeeOther, "/users")
	}

	err = s.mutate(vs, "toggle-user", func() (string, error) {
		return s.api.UpdateUser(c.Request().Context(), vs.Token, id, UserUpdateInput{IsActive: active})
	})
	if err != nil {
		return s.fail(c, vs, "update user", err, "/users")
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}

// deleteUser refuses self-deletion before any request goes out.
func (s *Server) deleteUser(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "delete user", err, "/users")
	}
	if id == vs.User.ID {
		vs.SetFlashError("Cannot delete your own account")
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	err = s.mutate(vs, "delete-user", func() (string, error) {
		return s.api.DeleteUser(c.Request().Context(), vs.Token, id)
	})
	if err != nil {
		return s.fail(c, vs, "delete user", err, "/users")
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}

// --- profile / KYC ---

type profileData struct {
	pageData
	IsNew        bool
	Profile      profile.BorrowerProfile
	Enums        map[string][]string
	ProfileBadge string
	BVNBadge     string
	IDBadge      string
}

func (s *Server) profilePage(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "load profile", err, "/borrowers")
	}

	p, err := s.api.GetProfile(c.Request().Context(), vs.Token, id)
	if err != nil {
		var apiErr *APIError
		// a missing profile is the normal new-profile state, not a failure
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
			return s.fail(c, vs, "load profile", err, "/borrowers")
		}
		p = nil
	}
	ps := NewProfileState(id, p)
	vs.mu.Lock()
	vs.Profile = ps
	vs.mu.Unlock()

	enums, err := s.api.Enums(c.Request().Context(), vs.Token)
	if err != nil {
		enums = profileuc.Enums()
	}

	data := profileData{
		pageData:     basePage(vs),
		IsNew:        ps.IsNew,
		Profile:      ps.Profile,
		Enums:        enums,
		ProfileBadge: StatusBadge(ps.Profile.ProfileVerificationStatus),
		BVNBadge:     StatusBadge(ps.Profile.BVNVerificationStatus),
		IDBadge:      StatusBadge(ps.Profile.IDVerificationStatus),
	}
	return c.Render(http.StatusOK, "profile.html", data)
}

func (s *Server) saveProfile(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "save profile", err, "/borrowers")
	}
	redirect := "/profile/" + itoa(id)

	fields := map[string]any{}
	addStr := func(names ...string) {
		for _, n := range names {
			fields[n] = strings.TrimSpace(c.FormValue(n))
		}
	}
	addNum := func(names ...string) {
		for _, n := range names {
			if v := c.FormValue(n); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					fields[n] = f
				}
			}
		}
	}
	switch c.FormValue("section") {
	case "personal":
		addStr("full_name", "date_of_birth", "phone_number", "email", "address", "city", "state", "marital_status")
	case "identification":
		addStr("bvn", "nin", "primary_id_type", "primary_id_number")
	case "employment":
		addStr("employment_type", "employer_name", "job_title", "business_name",
			"bank_name", "account_number", "account_name")
		addNum("monthly_income")
	default:
		vs.SetFlashError("Unknown profile section")
		return c.Redirect(http.StatusSeeOther, redirect)
	}

	err = s.mutate(vs, "save-profile", func() (string, error) {
		return s.api.UpsertProfile(c.Request().Context(), vs.Token, id, fields)
	})
	if err != nil {
		return s.fail(c, vs, "save profile", err, redirect)
	}
	return c.Redirect(http.StatusSeeOther, redirect)
}

func (s *Server) verifyProfile(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "verify", err, "/borrowers")
	}
	redirect := "/profile/" + itoa(id)
	kind := c.FormValue("kind")

	vs.mu.Lock()
	ps := vs.Profile
	vs.mu.Unlock()

	var value string
	switch kind {
	case "bvn":
		value = ps.Profile.BVN
	case "nin":
		value = ps.Profile.NIN
	default:
		vs.SetFlashError("Unknown verification type")
		return c.Redirect(http.StatusSeeOther, redirect)
	}
	if value == "" {
		vs.SetFlashError("Save the " + strings.ToUpper(kind) + " before verifying")
		return c.Redirect(http.StatusSeeOther, redirect)
	}

	var res *VerifyResult
	if kind == "bvn" {
		res, err = s.api.VerifyBVN(c.Request().Context(), vs.Token, value)
	} else {
		res, err = s.api.VerifyNIN(c.Request().Context(), vs.Token, value)
	}
	if err != nil {
		return s.fail(c, vs, "verify "+kind, err, redirect)
	}

	// backfill only fields that are still empty, then persist them
	ps.ApplyVerification(kind, res.Data)
	vs.mu.Lock()
	vs.Profile = ps
	vs.mu.Unlock()

	fields := map[string]any{
		"full_name":     ps.Profile.FullName,
		"date_of_birth": ps.Profile.DateOfBirth,
		"phone_number":  ps.Profile.PhoneNumber,
		"address":       ps.Profile.Address,
	}
	if _, err := s.api.UpsertProfile(c.Request().Context(), vs.Token, id, fields); err != nil {
		return s.fail(c, vs, "save verified fields", err, redirect)
	}
	vs.SetFlash(res.Message)
	return c.Redirect(http.StatusSeeOther, redirect)
}

// uploadDocument forwards a captured image to the API. The uploaded stream is
// closed on every exit path.
func (s *Server) uploadDocument(c echo.Context) error {
	vs := state(c)
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, vs, "upload document", err, "/borrowers")
	}
	redirect := "/profile/" + itoa(id)

	docType := c.FormValue("document_type")
	docName := strings.TrimSpace(c.FormValue("document_name"))
	if docType == "" || docName == "" {
		vs.SetFlashError("Document type and name are required")
		return c.Redirect(http.StatusSeeOther, redirect)
	}

	var docData string
	if file, err := c.FormFile("file"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return s.fail(c, vs, "upload document", err, redirect)
		}
		defer src.Close()
		raw, err := io.ReadAll(src)
		if err != nil {
			return s.fail(c, vs, "upload document", err, redirect)
		}
		docData = "data:" + file.Header.Get("Content-Type") + ";base64," + base64.StdEncoding.EncodeToString(raw)
	}

	err = s.mutate(vs, "upload-document", func() (string, error) {
		return s.api.UploadDocument(c.Request().Context(), vs.Token, id, DocumentUpload{
			DocumentType: docType,
			DocumentName: docName,
			DocumentData: docData,
		})
	})
	if err != nil {
		return s.fail(c, vs, "upload document", err, redirect)
	}
	return c.Redirect(http.StatusSeeOther, redirect)
}

// --- change password ---

type changePasswordData struct {
	pageData
	FirstLogin bool
	Strength   string
}

func (s *Server) changePasswordPage(c echo.Context) error {
	vs := state(c)
	return c.Render(http.StatusOK, "change_password.html", changePasswordData{
		pageData:   basePage(vs),
		FirstLogin: vs.FirstLogin,
	})
}

func (s *Server) changePassword(c echo.Context) error {
	vs := state(c)
	current := c.FormValue("current_password")
	newPw := c.FormValue("new_password")
	confirm := c.FormValue("confirm_password")

	if err := password.Validate(newPw, confirm); err != nil {
		vs.SetFlashError(err.Error())
		return c.Redirect(http.StatusSeeOther, "/change-password")
	}
	if err := s.api.ChangePassword(c.Request().Context(), vs.Token, current, newPw, confirm); err != nil {
		return s.fail(c, vs, "change password", err, "/change-password")
	}
	vs.mu.Lock()
	vs.FirstLogin = false
	vs.mu.Unlock()
	vs.SetFlash("Password changed successfully")
	return c.Redirect(http.StatusSeeOther, "/")
}

func pathID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(n), nil
}

func formUint(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.FormValue(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
