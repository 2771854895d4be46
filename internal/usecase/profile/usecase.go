package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lookman/internal/domain/loan"
	"lookman/internal/domain/profile"
	"lookman/internal/domain/user"
)

var (
	ErrProfileNotFound = errors.New("Profile not found")
	ErrBadDate         = errors.New("Invalid date format. Use YYYY-MM-DD")
	ErrDocumentFields  = errors.New("Document type and name are required")
	ErrPurposeRequired = errors.New("Loan purpose is required")
	ErrBadLoanAmount   = errors.New("Loan amount must be greater than 0")
	ErrBadLoanTerm     = errors.New("Loan term must be at least 1 month")
)

type Usecase struct {
	profiles profile.Repository
}

func New(profiles profile.Repository) *Usecase {
	return &Usecase{profiles: profiles}
}

// Get returns a borrower's KYC profile with documents attached. A missing
// profile is ErrProfileNotFound; clients treat that as "start a new one".
func (u *Usecase) Get(ctx context.Context, borrowerID uint) (*profile.BorrowerProfile, error) {
	p, err := u.profiles.GetByBorrowerID(ctx, borrowerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	docs, err := u.profiles.ListDocuments(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	p.Documents = docs
	return p, nil
}

// UpsertInput carries one section's worth of profile edits. Nil means the
// field was not part of the request and keeps its stored value.
type UpsertInput struct {
	FullName      *string
	DateOfBirth   *string
	PhoneNumber   *string
	Email         *string
	Address       *string
	City          *string
	State         *string
	Country       *string
	MaritalStatus *string

	BVN             *string
	NIN             *string
	PrimaryIDType   *string
	PrimaryIDNumber *string

	EmploymentType      *string
	EmployerName        *string
	JobTitle            *string
	WorkAddress         *string
	MonthlyIncome       *float64
	EmploymentStartDate *string

	BusinessName               *string
	BusinessRegistrationNumber *string
	BusinessAddress            *string
	BusinessType               *string
	AnnualRevenue              *float64

	BankName      *string
	AccountNumber *string
	AccountName   *string
	AccountType   *string
}

// Upsert creates the profile on first save and then merges only the fields
// present in the request, so each console section can be saved on its own.
func (u *Usecase) Upsert(ctx context.Context, borrowerID uint, in UpsertInput) (*profile.BorrowerProfile, error) {
	for _, d := range []*string{in.DateOfBirth, in.EmploymentStartDate} {
		if d != nil && *d != "" {
			if _, err := time.Parse(loan.DateLayout, *d); err != nil {
				return nil, ErrBadDate
			}
		}
	}

	p, err := u.profiles.GetByBorrowerID(ctx, borrowerID)
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if isNew {
		p = &profile.BorrowerProfile{
			BorrowerID:                borrowerID,
			Country:                   "Nigeria",
			ProfileVerificationStatus: profile.VerificationPending,
			BVNVerificationStatus:     profile.VerificationPending,
			IDVerificationStatus:      profile.VerificationPending,
		}
	}

	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&p.FullName, in.FullName)
	setStr(&p.DateOfBirth, in.DateOfBirth)
	setStr(&p.PhoneNumber, in.PhoneNumber)
	setStr(&p.Email, in.Email)
	setStr(&p.Address, in.Address)
	setStr(&p.City, in.City)
	setStr(&p.State, in.State)
	setStr(&p.Country, in.Country)
	setStr(&p.MaritalStatus, in.MaritalStatus)
	setStr(&p.BVN, in.BVN)
	setStr(&p.NIN, in.NIN)
	setStr(&p.PrimaryIDType, in.PrimaryIDType)
	setStr(&p.PrimaryIDNumber, in.PrimaryIDNumber)
	setStr(&p.EmploymentType, in.EmploymentType)
	setStr(&p.EmployerName, in.EmployerName)
	setStr(&p.JobTitle, in.JobTitle)
	setStr(&p.WorkAddress, in.WorkAddress)
	setStr(&p.EmploymentStartDate, in.EmploymentStartDate)
	setStr(&p.BusinessName, in.BusinessName)
	setStr(&p.BusinessRegistrationNumber, in.BusinessRegistrationNumber)
	setStr(&p.BusinessAddress, in.BusinessAddress)
	setStr(&p.BusinessType, in.BusinessType)
	setStr(&p.BankName, in.BankName)
	setStr(&p.AccountNumber, in.AccountNumber)
	setStr(&p.AccountName, in.AccountName)
	setStr(&p.AccountType, in.AccountType)
	if in.MonthlyIncome != nil {
		p.MonthlyIncome = *in.MonthlyIncome
	}
	if in.AnnualRevenue != nil {
		p.AnnualRevenue = *in.AnnualRevenue
	}

	if isNew {
		if err := u.profiles.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
	} else {
		if err := u.profiles.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}
	return p, nil
}

type DocumentInput struct {
	DocumentType string
	DocumentName string
	DocumentData string
	DocumentPath string
}

// UploadDocument attaches a captured document to an existing profile. Image
// data arrives base64 encoded from the console camera.
func (u *Usecase) UploadDocument(ctx context.Context, borrowerID uint, in DocumentInput) (*profile.Document, error) {
	if in.DocumentType == "" || in.DocumentName == "" {
		return nil, ErrDocumentFields
	}
	p, err := u.profiles.GetByBorrowerID(ctx, borrowerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	doc := &profile.Document{
		ProfileID:          p.ID,
		DocumentType:       in.DocumentType,
		DocumentName:       in.DocumentName,
		DocumentData:       in.DocumentData,
		DocumentPath:       in.DocumentPath,
		VerificationStatus: profile.VerificationPending,
	}
	if err := u.profiles.AddDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}
	return doc, nil
}

type ApplicationInput struct {
	LoanPurpose           string
	LoanAmount            float64
	LoanTerm              int
	InterestRate          float64
	HasCollateral         bool
	CollateralType        string
	CollateralValue       float64
	CollateralDescription string
	GuarantorName         string
	GuarantorPhone        string
	GuarantorAddress      string
	GuarantorRelationship string
}

func (u *Usecase) CreateApplication(ctx context.Context, viewer *user.User, borrowerID uint, in ApplicationInput) (*profile.LoanApplication, error) {
	if in.LoanPurpose == "" {
		return nil, ErrPurposeRequired
	}
	if in.LoanAmount <= 0 {
		return nil, ErrBadLoanAmount
	}
	if in.LoanTerm < 1 {
		return nil, ErrBadLoanTerm
	}
	p, err := u.profiles.GetByBorrowerID(ctx, borrowerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	app := &profile.LoanApplication{
		ProfileID:             p.ID,
		LoanPurpose:           in.LoanPurpose,
		LoanAmount:            in.LoanAmount,
		LoanTerm:              in.LoanTerm,
		InterestRate:          in.InterestRate,
		HasCollateral:         in.HasCollateral,
		CollateralType:        in.CollateralType,
		CollateralValue:       in.CollateralValue,
		CollateralDescription: in.CollateralDescription,
		GuarantorName:         in.GuarantorName,
		GuarantorPhone:        in.GuarantorPhone,
		GuarantorAddress:      in.GuarantorAddress,
		GuarantorRelationship: in.GuarantorRelationship,
		ApplicationStatus:     profile.VerificationPending,
		AssignedOfficerID:     viewer.ID,
	}
	if err := u.profiles.AddApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("add application: %w", err)
	}
	return app, nil
}

func (u *Usecase) ListApplications(ctx context.Context, viewer *user.User) ([]profile.LoanApplication, error) {
	if viewer.IsAdmin() {
		return u.profiles.ListApplications(ctx)
	}
	return u.profiles.ListApplicationsByOfficer(ctx, viewer.ID)
}

// VerifyResult is the response of the identity verification stubs.
type VerifyResult struct {
	Verified bool              `json:"verified"`
	Message  string            `json:"message"`
	Data     map[string]string `json:"data,omitempty"`
}

// VerifyBVN is a stand-in for the external BVN registry: any 11-digit number
// verifies and returns fixed registry data.
func VerifyBVN(bvn string) VerifyResult {
	if !isElevenDigits(bvn) {
		return VerifyResult{Verified: false, Message: "Invalid BVN format"}
	}
	return VerifyResult{
		Verified: true,
		Message:  "BVN verified successfully",
		Data: map[string]string{
			"name":          "John Doe",
			"date_of_birth": "1990-01-01",
			"phone":         "08012345678",
		},
	}
}

// VerifyNIN mirrors VerifyBVN for the national identity number.
func VerifyNIN(nin string) VerifyResult {
	if !isElevenDigits(nin) {
		return VerifyResult{Verified: false, Message: "Invalid NIN format"}
	}
	return VerifyResult{
		Verified: true,
		Message:  "NIN verified successfully",
		Data: map[string]string{
			"name":          "John Doe",
			"date_of_birth": "1990-01-01",
			"address":       "123 Main Street, Lagos",
		},
	}
}

func isElevenDigits(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Enums lists the accepted values for the profile's categorical fields.
func Enums() map[string][]string {
	return map[string][]string{
		"marital_status":      {"single", "married", "divorced", "widowed"},
		"employment_type":     {"employed", "self_employed", "unemployed", "retired", "student"},
		"identification_type": {"nin", "voters_card", "drivers_license", "international_passport"},
		"loan_purpose":        {"debt_consolidation", "home_improvement", "education", "business", "personal", "medical", "emergency"},
		"verification_status": {"pending", "verified", "rejected"},
	}
}
