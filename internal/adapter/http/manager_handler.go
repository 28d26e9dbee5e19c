package http

import (
	"net/http"
	"strconv"

	"paycrest-backend/internal/adapter/middleware"
	loanDomain "paycrest-backend/internal/domain/loan"
	loanUsecase "paycrest-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

// ManagerHandler serves the manager's loan queue: assignment to verification
// and the approve/reject decision with the amount-based admin escalation.
type ManagerHandler struct{ loans *loanUsecase.Usecase }

func NewManagerHandler(ln *loanUsecase.Usecase) *ManagerHandler { return &ManagerHandler{loans: ln} }

func (h *ManagerHandler) Dashboard(c echo.Context) error {
	list, err := h.loans.ListForManager(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		list = []loanDomain.Loan{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ManagerHandler) GetLoan(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan_id must be numeric"})
	}
	l, err := h.loans.Get(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type assignVerificationReq struct {
	VerifierID int64 `json:"verifier_id" validate:"required,gt=0"`
}

func (h *ManagerHandler) AssignVerification(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan_id must be numeric"})
	}
	var req assignVerificationReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	if err := h.loans.AssignVerification(c.Request().Context(), loanID, req.VerifierID); err != nil {
		return fail(c, err)
	}
	l, err := h.loans.Get(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type managerDecisionReq struct {
	Approve bool `json:"approve"`
}

// Decide approves or rejects at the manager step. Amounts above the manager
// limit come back as pending_admin_approval rather than approved.
func (h *ManagerHandler) Decide(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan_id must be numeric"})
	}
	var req managerDecisionReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	if err := h.loans.ManagerDecision(c.Request().Context(), loanID, middleware.UserID(c), req.Approve); err != nil {
		return fail(c, err)
	}
	l, err := h.loans.Get(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
