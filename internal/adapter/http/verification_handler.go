package http

import (
	"net/http"
	"strconv"

	"paycrest-backend/internal/adapter/middleware"
	"paycrest-backend/internal/adapter/storage"
	kycUsecase "paycrest-backend/internal/usecase/kyc"
	loanUsecase "paycrest-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

// VerificationHandler serves the verification team: the work queue, KYC
// reviews, loan field verification and access to uploaded documents.
type VerificationHandler struct {
	kyc   *kycUsecase.Usecase
	loans *loanUsecase.Usecase
	docs  *storage.Local
}

func NewVerificationHandler(kc *kycUsecase.Usecase, ln *loanUsecase.Usecase, docs *storage.Local) *VerificationHandler {
	return &VerificationHandler{kyc: kc, loans: ln, docs: docs}
}

func (h *VerificationHandler) Dashboard(c echo.Context) error {
	d, err := h.kyc.VerificationDashboard(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *VerificationHandler) GetKYC(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "customer_id must be numeric"})
	}
	rec, err := h.kyc.Lookup(c.Request().Context(), customerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

type verifyKYCReq struct {
	Approve bool   `json:"approve"`
	Remarks string `json:"remarks"`
	kycUsecase.Subscores
}

func (h *VerificationHandler) VerifyKYC(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "customer_id must be numeric"})
	}
	var req verifyKYCReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	rec, err := h.kyc.Verify(c.Request().Context(), customerID, middleware.UserID(c), req.Approve, req.Subscores, req.Remarks)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

type verifyLoanReq struct {
	Approve bool `json:"approve"`
}

// VerifyLoan records the field-verification outcome for an assigned loan.
func (h *VerificationHandler) VerifyLoan(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan_id must be numeric"})
	}
	var req verifyLoanReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	if err := h.loans.VerificationDecision(c.Request().Context(), loanID, req.Approve); err != nil {
		return fail(c, err)
	}
	l, err := h.loans.Get(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Document streams a stored PDF back to the reviewer.
func (h *VerificationHandler) Document(c echo.Context) error {
	rel := c.QueryParam("path")
	if rel == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing path query param"})
	}
	full, err := h.docs.Path(rel)
	if err != nil {
		return fail(c, err)
	}
	return c.File(full)
}
