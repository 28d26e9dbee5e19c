package http

import (
	"net/http"
	"strconv"

	"paycrest-backend/internal/adapter/middleware"
	loanDomain "paycrest-backend/internal/domain/loan"
	"paycrest-backend/internal/usecase/auth"
	loanUsecase "paycrest-backend/internal/usecase/loan"
	"paycrest-backend/internal/usecase/maintenance"
	settingsUsecase "paycrest-backend/internal/usecase/settings"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the admin surface: high-value approvals, the sanction
// paperwork steps, disbursement, staff onboarding, system settings and the
// EMI penalty scan.
type AdminHandler struct {
	loans    *loanUsecase.Usecase
	auth     *auth.Usecase
	settings *settingsUsecase.Usecase
	scanner  *maintenance.Usecase
}

func NewAdminHandler(ln *loanUsecase.Usecase, au *auth.Usecase, st *settingsUsecase.Usecase, sc *maintenance.Usecase) *AdminHandler {
	return &AdminHandler{loans: ln, auth: au, settings: st, scanner: sc}
}

func (h *AdminHandler) PendingApprovals(c echo.Context) error {
	list, err := h.loans.ListPendingAdminApprovals(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		list = []loanDomain.Loan{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) loanID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan_id must be numeric"})
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) showLoan(c echo.Context, loanID int64) error {
	l, err := h.loans.Get(c.Request().Context(), loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *AdminHandler) Approve(c echo.Context) error {
	loanID, ok := h.loanID(c)
	if !ok {
		return nil
	}
	if err := h.loans.AdminApprove(c.Request().Context(), loanID, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return h.showLoan(c, loanID)
}

func (h *AdminHandler) SendSanction(c echo.Context) error {
	loanID, ok := h.loanID(c)
	if !ok {
		return nil
	}
	if err := h.loans.SendSanction(c.Request().Context(), loanID); err != nil {
		return fail(c, err)
	}
	return h.showLoan(c, loanID)
}

func (h *AdminHandler) MarkSigned(c echo.Context) error {
	loanID, ok := h.loanID(c)
	if !ok {
		return nil
	}
	if err := h.loans.MarkSigned(c.Request().Context(), loanID); err != nil {
		return fail(c, err)
	}
	return h.showLoan(c, loanID)
}

func (h *AdminHandler) Disburse(c echo.Context) error {
	loanID, ok := h.loanID(c)
	if !ok {
		return nil
	}
	if err := h.loans.Disburse(c.Request().Context(), loanID); err != nil {
		return fail(c, err)
	}
	return h.showLoan(c, loanID)
}

func (h *AdminHandler) CreateStaff(c echo.Context) error {
	var req auth.CreateStaffInput
	if !bindAndValidate(c, &req) {
		return nil
	}
	usr, err := h.auth.CreateStaff(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, usr)
}

func (h *AdminHandler) GetSettings(c echo.Context) error {
	s, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req settingsUsecase.UpdateInput
	if !bindAndValidate(c, &req) {
		return nil
	}
	s, err := h.settings.Update(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// RunPenaltyScan triggers the overdue-EMI batch on demand.
func (h *AdminHandler) RunPenaltyScan(c echo.Context) error {
	res, err := h.scanner.RunPenaltyScan(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
