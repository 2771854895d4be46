package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	profileuc "lookman/internal/usecase/profile"
)

type ProfileHandler struct {
	uc *profileuc.Usecase
}

func NewProfileHandler(uc *profileuc.Usecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"profile": p})
}

// upsertProfileRequest mirrors the console's KYC sections. Absent fields stay
// nil and keep their stored values, so one section can be saved at a time.
type upsertProfileRequest struct {
	FullName      *string `json:"full_name"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,dateYMD"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Country       *string `json:"country"`
	MaritalStatus *string `json:"marital_status"`

	BVN             *string `json:"bvn" validate:"omitempty,digits11"`
	NIN             *string `json:"nin" validate:"omitempty,digits11"`
	PrimaryIDType   *string `json:"primary_id_type"`
	PrimaryIDNumber *string `json:"primary_id_number"`

	EmploymentType      *string  `json:"employment_type"`
	EmployerName        *string  `json:"employer_name"`
	JobTitle            *string  `json:"job_title"`
	WorkAddress         *string  `json:"work_address"`
	MonthlyIncome       *float64 `json:"monthly_income" validate:"omitempty,gte=0"`
	EmploymentStartDate *string  `json:"employment_start_date" validate:"omitempty,dateYMD"`

	BusinessName               *string  `json:"business_name"`
	BusinessRegistrationNumber *string  `json:"business_registration_number"`
	BusinessAddress            *string  `json:"business_address"`
	BusinessType               *string  `json:"business_type"`
	AnnualRevenue              *float64 `json:"annual_revenue" validate:"omitempty,gte=0"`

	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
	AccountName   *string `json:"account_name"`
	AccountType   *string `json:"account_type"`
}

func (h *ProfileHandler) Upsert(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req upsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	p, err := h.uc.Upsert(c.Request().Context(), id, profileuc.UpsertInput{
		FullName:      req.FullName,
		DateOfBirth:   req.DateOfBirth,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		MaritalStatus: req.MaritalStatus,

		BVN:             req.BVN,
		NIN:             req.NIN,
		PrimaryIDType:   req.PrimaryIDType,
		PrimaryIDNumber: req.PrimaryIDNumber,

		EmploymentType:      req.EmploymentType,
		EmployerName:        req.EmployerName,
		JobTitle:            req.JobTitle,
		WorkAddress:         req.WorkAddress,
		MonthlyIncome:       req.MonthlyIncome,
		EmploymentStartDate: req.EmploymentStartDate,

		BusinessName:               req.BusinessName,
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		BusinessAddress:            req.BusinessAddress,
		BusinessType:               req.BusinessType,
		AnnualRevenue:              req.AnnualRevenue,

		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		AccountType:   req.AccountType,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile saved successfully",
		"profile": p,
	})
}

type uploadDocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
	DocumentName string `json:"document_name" validate:"required"`
	DocumentData string `json:"document_data"`
	DocumentPath string `json:"document_path"`
}

func (h *ProfileHandler) UploadDocument(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req uploadDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	doc, err := h.uc.UploadDocument(c.Request().Context(), id, profileuc.DocumentInput{
		DocumentType: req.DocumentType,
		DocumentName: req.DocumentName,
		DocumentData: req.DocumentData,
		DocumentPath: req.DocumentPath,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":  "Document uploaded successfully",
		"document": doc,
	})
}

type createApplicationRequest struct {
	LoanPurpose           string  `json:"loan_purpose" validate:"required"`
	LoanAmount            float64 `json:"loan_amount" validate:"required,gt=0"`
	LoanTerm              int     `json:"loan_term" validate:"required,gte=1"`
	InterestRate          float64 `json:"interest_rate" validate:"gte=0"`
	HasCollateral         bool    `json:"has_collateral"`
	CollateralType        string  `json:"collateral_type"`
	CollateralValue       float64 `json:"collateral_value" validate:"gte=0"`
	CollateralDescription string  `json:"collateral_description"`
	GuarantorName         string  `json:"guarantor_name"`
	GuarantorPhone        string  `json:"guarantor_phone"`
	GuarantorAddress      string  `json:"guarantor_address"`
	GuarantorRelationship string  `json:"guarantor_relationship"`
}

func (h *ProfileHandler) CreateApplication(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(err)})
	}

	app, err := h.uc.CreateApplication(c.Request().Context(), middleware.CurrentUser(c), id, profileuc.ApplicationInput{
		LoanPurpose:           req.LoanPurpose,
		LoanAmount:            req.LoanAmount,
		LoanTerm:              req.LoanTerm,
		InterestRate:          req.InterestRate,
		HasCollateral:         req.HasCollateral,
		CollateralType:        req.CollateralType,
		CollateralValue:       req.CollateralValue,
		CollateralDescription: req.CollateralDescription,
		GuarantorName:         req.GuarantorName,
		GuarantorPhone:        req.GuarantorPhone,
		GuarantorAddress:      req.GuarantorAddress,
		GuarantorRelationship: req.GuarantorRelationship,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":     "Loan application submitted successfully",
		"application": app,
	})
}

func (h *ProfileHandler) ListApplications(c echo.Context) error {
	apps, err := h.uc.ListApplications(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": apps})
}

type verifyRequest struct {
	BVN string `json:"bvn"`
	NIN string `json:"nin"`
}

func (h *ProfileHandler) VerifyBVN(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	res := profileuc.VerifyBVN(req.BVN)
	if !res.Verified {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Message})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProfileHandler) VerifyNIN(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	res := profileuc.VerifyNIN(req.NIN)
	if !res.Verified {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Message})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProfileHandler) Enums(c echo.Context) error {
	return c.JSON(http.StatusOK, profileuc.Enums())
}
