package profile

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type EmploymentType string

const (
	EmploymentEmployed     EmploymentType = "employed"
	EmploymentSelfEmployed EmploymentType = "self_employed"
	EmploymentUnemployed   EmploymentType = "unemployed"
	EmploymentRetired      EmploymentType = "retired"
	EmploymentStudent      EmploymentType = "student"
)

// BorrowerProfile is the 1:1 KYC extension of a borrower. Every field except
// the borrower reference is optional and saved piecewise, section by section.
type BorrowerProfile struct {
	ID         uint `gorm:"primaryKey;column:id" json:"id"`
	BorrowerID uint `gorm:"uniqueIndex;not null" json:"borrower_id"`

	// Personal information
	FullName      string `gorm:"size:100" json:"full_name"`
	DateOfBirth   string `gorm:"size:10" json:"date_of_birth"`
	PhoneNumber   string `gorm:"size:20" json:"phone_number"`
	Email         string `gorm:"size:100" json:"email"`
	Address       string `gorm:"type:text" json:"address"`
	City          string `gorm:"size:50" json:"city"`
	State         string `gorm:"size:50" json:"state"`
	Country       string `gorm:"size:50;default:'Nigeria'" json:"country"`
	MaritalStatus string `gorm:"size:50" json:"marital_status"`

	// Identification
	BVN             string `gorm:"size:11" json:"bvn"`
	NIN             string `gorm:"size:11" json:"nin"`
	PrimaryIDType   string `gorm:"size:50" json:"primary_id_type"`
	PrimaryIDNumber string `gorm:"size:50" json:"primary_id_number"`

	// Employment
	EmploymentType      string  `gorm:"size:50" json:"employment_type"`
	EmployerName        string  `gorm:"size:100" json:"employer_name"`
	JobTitle            string  `gorm:"size:100" json:"job_title"`
	WorkAddress         string  `gorm:"type:text" json:"work_address"`
	MonthlyIncome       float64 `gorm:"type:decimal(15,2)" json:"monthly_income"`
	EmploymentStartDate string  `gorm:"size:10" json:"employment_start_date"`

	// Business (self-employed)
	BusinessName               string  `gorm:"size:100" json:"business_name"`
	BusinessRegistrationNumber string  `gorm:"size:50" json:"business_registration_number"`
	BusinessAddress            string  `gorm:"type:text" json:"business_address"`
	BusinessType               string  `gorm:"size:100" json:"business_type"`
	AnnualRevenue              float64 `gorm:"type:decimal(15,2)" json:"annual_revenue"`

	// Banking
	BankName      string `gorm:"size:100" json:"bank_name"`
	AccountNumber string `gorm:"size:10" json:"account_number"`
	AccountName   string `gorm:"size:100" json:"account_name"`
	AccountType   string `gorm:"size:20" json:"account_type"`

	// Verification
	ProfileVerificationStatus VerificationStatus `gorm:"size:20;default:'pending'" json:"profile_verification_status"`
	BVNVerificationStatus     VerificationStatus `gorm:"size:20;default:'pending'" json:"bvn_verification_status"`
	IDVerificationStatus      VerificationStatus `gorm:"size:20;default:'pending'" json:"id_verification_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Documents []Document `gorm:"foreignKey:ProfileID" json:"documents"`
}

func (BorrowerProfile) TableName() string { return "borrower_profiles" }

// Document is a KYC artifact captured in the console (base64 image data) or
// referenced by path.
type Document struct {
	ID                 uint               `gorm:"primaryKey;column:id" json:"id"`
	ProfileID          uint               `gorm:"index;not null" json:"profile_id"`
	DocumentType       string             `gorm:"size:50;not null" json:"document_type"`
	DocumentName       string             `gorm:"size:100;not null" json:"document_name"`
	DocumentPath       string             `gorm:"size:255" json:"document_path"`
	DocumentData       string             `gorm:"type:text" json:"document_data"`
	VerificationStatus VerificationStatus `gorm:"size:20;default:'pending'" json:"verification_status"`
	UploadedAt         time.Time          `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Document) TableName() string { return "profile_documents" }

// LoanApplication is a pre-loan request captured on the KYC profile, kept
// separate from disbursed loans.
type LoanApplication struct {
	ID        uint `gorm:"primaryKey;column:id" json:"id"`
	ProfileID uint `gorm:"index;not null" json:"profile_id"`

	LoanPurpose  string  `gorm:"size:50;not null" json:"loan_purpose"`
	LoanAmount   float64 `gorm:"type:decimal(15,2);not null" json:"loan_amount"`
	LoanTerm     int     `gorm:"not null" json:"loan_term"`
	InterestRate float64 `gorm:"type:decimal(5,2)" json:"interest_rate"`

	HasCollateral         bool    `gorm:"default:false" json:"has_collateral"`
	CollateralType        string  `gorm:"size:50" json:"collateral_type"`
	CollateralValue       float64 `gorm:"type:decimal(15,2)" json:"collateral_value"`
	CollateralDescription string  `gorm:"type:text" json:"collateral_description"`

	GuarantorName         string `gorm:"size:100" json:"guarantor_name"`
	GuarantorPhone        string `gorm:"size:20" json:"guarantor_phone"`
	GuarantorAddress      string `gorm:"type:text" json:"guarantor_address"`
	GuarantorRelationship string `gorm:"size:50" json:"guarantor_relationship"`

	ApplicationStatus VerificationStatus `gorm:"size:20;default:'pending'" json:"application_status"`
	ApplicationDate   time.Time          `gorm:"autoCreateTime" json:"application_date"`
	AssignedOfficerID uint               `gorm:"index" json:"assigned_officer_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanApplication) TableName() string { return "loan_applications" }
