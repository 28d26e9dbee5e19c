package http

import (
	"paycrest-backend/internal/adapter/middleware"
	userDomain "paycrest-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health       *Handler
	Auth         *AuthHandler
	Customer     *CustomerHandler
	Manager      *ManagerHandler
	Verification *VerificationHandler
	Admin        *AdminHandler

	Authenticate echo.MiddlewareFunc
	Idempotency  echo.MiddlewareFunc
}

// RegisterRoutes mounts the API. Role gates apply per group; the idempotency
// middleware guards only the money-moving routes.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api")
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	cust := api.Group("/customer", h.Authenticate, middleware.RequireRoles(userDomain.RoleCustomer))
	cust.GET("/profile", h.Customer.Dashboard)
	cust.POST("/account/add-money", h.Customer.AddMoney, h.Idempotency)
	cust.GET("/transactions", h.Customer.Transactions)
	cust.POST("/kyc", h.Customer.SubmitKYC)
	cust.GET("/kyc", h.Customer.KYCStatus)
	cust.POST("/kyc/estimate", h.Customer.EstimateKYCScore)
	cust.POST("/kyc/documents", h.Customer.UploadKYCDocument)
	cust.GET("/loans", h.Customer.MyLoans)
	cust.POST("/loans/personal", h.Customer.ApplyPersonalLoan)
	cust.POST("/loans/vehicle", h.Customer.ApplyVehicleLoan)
	cust.POST("/loans/:loan_id/pay-emi", h.Customer.PayEMI, h.Idempotency)
	cust.POST("/loans/:loan_id/documents", h.Customer.UploadLoanDocument)

	mgr := api.Group("/manager", h.Authenticate, middleware.RequireRoles(userDomain.RoleManager))
	mgr.GET("/loans", h.Manager.Dashboard)
	mgr.GET("/loans/:loan_id", h.Manager.GetLoan)
	mgr.POST("/loans/:loan_id/assign-verification", h.Manager.AssignVerification)
	mgr.POST("/loans/:loan_id/decision", h.Manager.Decide)

	ver := api.Group("/verification", h.Authenticate, middleware.RequireRoles(userDomain.RoleVerification))
	ver.GET("/dashboard", h.Verification.Dashboard)
	ver.GET("/kyc/:customer_id", h.Verification.GetKYC)
	ver.POST("/kyc/:customer_id/verify", h.Verification.VerifyKYC)
	ver.POST("/loans/:loan_id/verify", h.Verification.VerifyLoan)
	ver.GET("/documents", h.Verification.Document)

	adm := api.Group("/admin", h.Authenticate, middleware.RequireRoles(userDomain.RoleAdmin))
	adm.GET("/loans/pending-approvals", h.Admin.PendingApprovals)
	adm.POST("/loans/:loan_id/approve", h.Admin.Approve)
	adm.POST("/loans/:loan_id/send-sanction", h.Admin.SendSanction)
	adm.POST("/loans/:loan_id/mark-signed", h.Admin.MarkSigned)
	adm.POST("/loans/:loan_id/disburse", h.Admin.Disburse, h.Idempotency)
	adm.POST("/staff", h.Admin.CreateStaff)
	adm.GET("/settings", h.Admin.GetSettings)
	adm.PUT("/settings", h.Admin.UpdateSettings)
	adm.POST("/run-emi-penalty-scan", h.Admin.RunPenaltyScan)
}
