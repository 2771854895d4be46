package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/profile"
	"lookman/internal/domain/user"
	paymentuc "lookman/internal/usecase/payment"
	"lookman/internal/usecase/report"
)

// ErrUnauthorized marks an API 401; the console answers it with a redirect to
// the login view.
var ErrUnauthorized = errors.New("session expired")

// APIError carries a non-2xx API response body's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client is the console's typed API client. One method per endpoint; the
// caller's session token travels as the API session cookie.
type Client struct {
	base string
	hc   *http.Client
}

func NewClient(base string) *Client {
	return &Client{base: base, hc: &http.Client{Timeout: 30 * time.Second}}
}

func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		msg := "Request failed"
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			msg = payload.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- auth ---

type LoginResult struct {
	Message    string    `json:"message"`
	User       user.User `json:"user"`
	FirstLogin bool      `json:"first_login"`
	Token      string    `json:"-"`
}

// Login authenticates and captures the API session cookie for reuse on every
// later call.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	raw, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		msg := "Login failed"
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			msg = payload.Error
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	var res LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_token" {
			res.Token = ck.Value
		}
	}
	if res.Token == "" {
		return nil, errors.New("failed to log in: no session issued")
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, token, http.MethodPost, "/auth/logout", nil, nil)
}

type CheckAuthResult struct {
	Authenticated bool      `json:"authenticated"`
	User          user.User `json:"user"`
	FirstLogin    bool      `json:"first_login"`
}

func (c *Client) CheckAuth(ctx context.Context, token string) (*CheckAuthResult, error) {
	var res CheckAuthResult
	if err := c.do(ctx, token, http.MethodGet, "/auth/check-auth", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ChangePassword(ctx context.Context, token, current, newPw, confirm string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     newPw,
		"confirm_password": confirm,
	}
	return c.do(ctx, token, http.MethodPost, "/auth/change-password", body, nil)
}

// --- borrowers ---

func (c *Client) ListBorrowers(ctx context.Context, token string) ([]borrower.Borrower, error) {
	var env struct {
		Borrowers []borrower.Borrower `json:"borrowers"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/borrowers", nil, &env); err != nil {
		return nil, err
	}
	return env.Borrowers, nil
}

type BorrowerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

func (c *Client) CreateBorrower(ctx context.Context, token string, in BorrowerInput) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPost, "/borrowers", in, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) UpdateBorrower(ctx context.Context, token string, id uint, in BorrowerInput) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPut, "/borrowers/"+itoa(id), in, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) DeleteBorrower(ctx context.Context, token string, id uint) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodDelete, "/borrowers/"+itoa(id), nil, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// --- loans ---

func (c *Client) ListLoans(ctx context.Context, token string) ([]loan.Loan, error) {
	var env struct {
		Loans []loan.Loan `json:"loans"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/loans", nil, &env); err != nil {
		return nil, err
	}
	return env.Loans, nil
}

type LoanInput struct {
	BorrowerID      uint     `json:"borrower_id"`
	PrincipalAmount float64  `json:"principal_amount"`
	InterestRate    *float64 `json:"interest_rate,omitempty"`
	Expenses        float64  `json:"expenses"`
	DurationDays    *int     `json:"loan_duration_days,omitempty"`
	StartDate       string   `json:"start_date,omitempty"`
}

func (c *Client) CreateLoan(ctx context.Context, token string, in LoanInput) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPost, "/loans", in, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

type LoanDetail struct {
	Loan     loan.Loan            `json:"loan"`
	Schedule []loan.ScheduleEntry `json:"schedule"`
	Payments []payment.Payment    `json:"payments"`
}

func (c *Client) GetLoan(ctx context.Context, token string, id uint) (*LoanDetail, error) {
	var d LoanDetail
	if err := c.do(ctx, token, http.MethodGet, "/loans/"+itoa(id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) UpdateLoanStatus(ctx context.Context, token string, id uint, status string) (string, error) {
	var env messageEnvelope
	body := map[string]string{"status": status}
	if err := c.do(ctx, token, http.MethodPut, "/loans/"+itoa(id)+"/status", body, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// --- payments ---

func (c *Client) ListPayments(ctx context.Context, token string) ([]payment.Payment, error) {
	var env struct {
		Payments []payment.Payment `json:"payments"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/payments", nil, &env); err != nil {
		return nil, err
	}
	return env.Payments, nil
}

type PaymentInput struct {
	LoanID       uint    `json:"loan_id"`
	PaymentDate  string  `json:"payment_date"`
	ActualAmount float64 `json:"actual_amount"`
	PaymentDay   int     `json:"payment_day"`
	Notes        string  `json:"notes,omitempty"`
}

func (c *Client) RecordPayment(ctx context.Context, token string, in PaymentInput) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPost, "/payments", in, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

type TodayPayments struct {
	Payments []payment.Payment      `json:"payments"`
	Summary  paymentuc.TodaySummary `json:"summary"`
}

func (c *Client) TodayPayments(ctx context.Context, token string) (*TodayPayments, error) {
	var res TodayPayments
	if err := c.do(ctx, token, http.MethodGet, "/payments/today", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- reports ---

func (c *Client) DailyCollections(ctx context.Context, token, date string) (*report.DailyCollectionsReport, error) {
	var rep report.DailyCollectionsReport
	path := "/reports/daily-collections"
	if date != "" {
		path += "?date=" + date
	}
	if err := c.do(ctx, token, http.MethodGet, path, nil, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (c *Client) OutstandingLoans(ctx context.Context, token string) (*report.OutstandingLoansReport, error) {
	var rep report.OutstandingLoansReport
	if err := c.do(ctx, token, http.MethodGet, "/reports/outstanding-loans", nil, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (c *Client) ProfitLoss(ctx context.Context, token, start, end string) (*report.ProfitLossReport, error) {
	var rep report.ProfitLossReport
	path := "/reports/profit-loss?start_date=" + start + "&end_date=" + end
	if err := c.do(ctx, token, http.MethodGet, path, nil, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (c *Client) Performance(ctx context.Context, token, start, end string, userID uint) (*report.PerformanceReport, error) {
	var rep report.PerformanceReport
	path := "/reports/performance?start_date=" + start + "&end_date=" + end
	if userID != 0 {
		path += "&user_id=" + itoa(userID)
	}
	if err := c.do(ctx, token, http.MethodGet, path, nil, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (c *Client) DashboardStats(ctx context.Context, token string) (*report.DashboardStats, error) {
	var stats report.DashboardStats
	if err := c.do(ctx, token, http.MethodGet, "/admin/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- admin users ---

func (c *Client) ListUsers(ctx context.Context, token string) ([]user.User, error) {
	var env struct {
		Users []user.User `json:"users"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/admin/users", nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (c *Client) CreateUser(ctx context.Context, token string, in UserInput) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPost, "/admin/users", in, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

type UserUpdateInput struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, token string, id uint, in UserUpdateInput) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPut, "/admin/users/"+itoa(id), in, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id uint) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodDelete, "/admin/users/"+itoa(id), nil, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// --- profile / KYC ---

func (c *Client) GetProfile(ctx context.Context, token string, borrowerID uint) (*profile.BorrowerProfile, error) {
	var env struct {
		Profile *profile.BorrowerProfile `json:"profile"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/profile/borrower/"+itoa(borrowerID), nil, &env); err != nil {
		return nil, err
	}
	return env.Profile, nil
}

// UpsertProfile sends only the provided fields; the API merges them into the
// stored profile.
func (c *Client) UpsertProfile(ctx context.Context, token string, borrowerID uint, fields map[string]any) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPut, "/profile/borrower/"+itoa(borrowerID), fields, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

type DocumentUpload struct {
	DocumentType string `json:"document_type"`
	DocumentName string `json:"document_name"`
	DocumentData string `json:"document_data,omitempty"`
	DocumentPath string `json:"document_path,omitempty"`
}

func (c *Client) UploadDocument(ctx context.Context, token string, borrowerID uint, in DocumentUpload) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, token, http.MethodPost, "/profile/borrower/"+itoa(borrowerID)+"/documents", in, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

type VerifyResult struct {
	Verified bool              `json:"verified"`
	Message  string            `json:"message"`
	Data     map[string]string `json:"data"`
}

func (c *Client) VerifyBVN(ctx context.Context, token, bvn string) (*VerifyResult, error) {
	var res VerifyResult
	if err := c.do(ctx, token, http.MethodPost, "/profile/verification/bvn", map[string]string{"bvn": bvn}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) VerifyNIN(ctx context.Context, token, nin string) (*VerifyResult, error) {
	var res VerifyResult
	if err := c.do(ctx, token, http.MethodPost, "/profile/verification/nin", map[string]string{"nin": nin}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Enums(ctx context.Context, token string) (map[string][]string, error) {
	var res map[string][]string
	if err := c.do(ctx, token, http.MethodGet, "/profile/enums", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
