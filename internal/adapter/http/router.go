package http

import (
	"github.com/labstack/echo/v4"

	"lookman/internal/adapter/middleware"
	"lookman/internal/usecase/auth"
)

// Handlers bundles every API handler for route registration.
type Handlers struct {
	Auth     *AuthHandler
	Borrower *BorrowerHandler
	Loan     *LoanHandler
	Payment  *PaymentHandler
	Report   *ReportHandler
	Admin    *AdminHandler
	Profile  *ProfileHandler
}

// RegisterRoutes mounts the API under /api. Everything except login, health
// and the strength check sits behind the session middleware; admin routes add
// the role guard on top.
func RegisterRoutes(e *echo.Echo, h Handlers, authUC *auth.Usecase) {
	e.Validator = NewValidator()

	api := e.Group("/api")
	api.GET("/health", Health)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.POST("/auth/password-strength", h.Auth.PasswordStrength)

	authed := api.Group("", middleware.SessionAuth(authUC))
	authed.GET("/auth/check-auth", h.Auth.CheckAuth)
	authed.POST("/auth/change-password", h.Auth.ChangePassword)
	authed.GET("/auth/profile", h.Auth.Profile)
	authed.PUT("/auth/profile", h.Auth.UpdateProfile)

	authed.GET("/borrowers", h.Borrower.List)
	authed.POST("/borrowers", h.Borrower.Create)
	authed.GET("/borrowers/:id", h.Borrower.Get)
	authed.PUT("/borrowers/:id", h.Borrower.Update)
	authed.DELETE("/borrowers/:id", h.Borrower.Delete)
	authed.GET("/borrowers/:id/loans", h.Borrower.Loans)

	authed.GET("/loans", h.Loan.List)
	authed.POST("/loans", h.Loan.Create)
	authed.GET("/loans/summary", h.Loan.Summary)
	authed.GET("/loans/:id", h.Loan.Get)
	authed.PUT("/loans/:id", h.Loan.Update)
	authed.PUT("/loans/:id/status", h.Loan.UpdateStatus)
	authed.GET("/loans/:id/schedule", h.Loan.Schedule)

	authed.GET("/payments", h.Payment.List)
	authed.POST("/payments", h.Payment.Record)
	authed.GET("/payments/today", h.Payment.Today)
	authed.GET("/payments/overdue", h.Payment.Overdue)
	authed.GET("/payments/:id", h.Payment.Get)
	authed.PUT("/payments/:id", h.Payment.Update)
	authed.DELETE("/payments/:id", h.Payment.Delete)

	authed.GET("/reports/daily-collections", h.Report.DailyCollections)
	authed.GET("/reports/outstanding-loans", h.Report.OutstandingLoans)
	authed.GET("/reports/profit-loss", h.Report.ProfitLoss, middleware.AdminRequired)
	authed.GET("/reports/performance", h.Report.Performance)

	authed.GET("/profile/borrower/:id", h.Profile.Get)
	authed.POST("/profile/borrower/:id", h.Profile.Upsert)
	authed.PUT("/profile/borrower/:id", h.Profile.Upsert)
	authed.POST("/profile/borrower/:id/documents", h.Profile.UploadDocument)
	authed.POST("/profile/borrower/:id/applications", h.Profile.CreateApplication)
	authed.GET("/profile/applications", h.Profile.ListApplications)
	authed.POST("/profile/verification/bvn", h.Profile.VerifyBVN)
	authed.POST("/profile/verification/nin", h.Profile.VerifyNIN)
	authed.GET("/profile/enums", h.Profile.Enums)

	adminG := authed.Group("/admin", middleware.AdminRequired)
	adminG.GET("/users", h.Admin.ListUsers)
	adminG.POST("/users", h.Admin.CreateUser)
	adminG.PUT("/users/:id", h.Admin.UpdateUser)
	adminG.DELETE("/users/:id", h.Admin.DeleteUser)
	adminG.GET("/dashboard/stats", h.Report.Dashboard)
}
