package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"paycrest-backend/internal/adapter/middleware"
	"paycrest-backend/internal/adapter/storage"
	loanDomain "paycrest-backend/internal/domain/loan"
	txnDomain "paycrest-backend/internal/domain/transaction"
	"paycrest-backend/internal/usecase/customer"
	kycUsecase "paycrest-backend/internal/usecase/kyc"
	"paycrest-backend/internal/usecase/ledger"
	loanUsecase "paycrest-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

// CustomerHandler serves everything a logged-in customer does: profile,
// money in, KYC submission, loan application and EMI payment.
type CustomerHandler struct {
	profile *customer.Usecase
	ledger  *ledger.Usecase
	kyc     *kycUsecase.Usecase
	loans   *loanUsecase.Usecase
	docs    *storage.Local
}

func NewCustomerHandler(profile *customer.Usecase, lg *ledger.Usecase, kc *kycUsecase.Usecase, ln *loanUsecase.Usecase, docs *storage.Local) *CustomerHandler {
	return &CustomerHandler{profile: profile, ledger: lg, kyc: kc, loans: ln, docs: docs}
}

func (h *CustomerHandler) Dashboard(c echo.Context) error {
	p, err := h.profile.Dashboard(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type addMoneyReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *CustomerHandler) AddMoney(c echo.Context) error {
	var req addMoneyReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	txn, err := h.ledger.Credit(c.Request().Context(), middleware.UserID(c), req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, txn)
}

func (h *CustomerHandler) Transactions(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	list, err := h.ledger.TransactionsFor(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		list = []txnDomain.Transaction{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CustomerHandler) SubmitKYC(c echo.Context) error {
	var req kycUsecase.SubmitInput
	if !bindAndValidate(c, &req) {
		return nil
	}
	rec, err := h.kyc.Submit(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *CustomerHandler) KYCStatus(c echo.Context) error {
	rec, err := h.kyc.Lookup(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// EstimateKYCScore gives the customer an indicative score without touching
// stored state.
func (h *CustomerHandler) EstimateKYCScore(c echo.Context) error {
	var req kycUsecase.SubmitInput
	if !bindAndValidate(c, &req) {
		return nil
	}
	return c.JSON(http.StatusOK, h.kyc.SelfEstimate(req))
}

func (h *CustomerHandler) ApplyPersonalLoan(c echo.Context) error {
	return h.apply(c, loanDomain.CategoryPersonal)
}

func (h *CustomerHandler) ApplyVehicleLoan(c echo.Context) error {
	return h.apply(c, loanDomain.CategoryVehicle)
}

func (h *CustomerHandler) apply(c echo.Context, category loanDomain.Category) error {
	var req loanUsecase.ApplyInput
	if !bindAndValidate(c, &req) {
		return nil
	}
	l, err := h.loans.Apply(c.Request().Context(), category, middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *CustomerHandler) MyLoans(c echo.Context) error {
	list, err := h.loans.ListForCustomer(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		list = []loanDomain.Loan{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CustomerHandler) PayEMI(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan_id must be numeric"})
	}
	l, err := h.loans.PayEMIByID(c.Request().Context(), loanID, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// UploadKYCDocument stores a PDF under the customer's kyc folder and returns
// the relative path to reference in the KYC submission.
func (h *CustomerHandler) UploadKYCDocument(c echo.Context) error {
	return h.upload(c, filepath.Join("kyc", strconv.FormatInt(middleware.UserID(c), 10)))
}

// UploadLoanDocument stores a PDF under the customer's folder for one loan.
func (h *CustomerHandler) UploadLoanDocument(c echo.Context) error {
	loanID := c.Param("loan_id")
	if _, err := strconv.ParseInt(loanID, 10, 64); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan_id must be numeric"})
	}
	return h.upload(c, filepath.Join("loans", strconv.FormatInt(middleware.UserID(c), 10), loanID))
}

func (h *CustomerHandler) upload(c echo.Context, subdir string) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file field"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	rel, err := h.docs.Store(subdir, fh.Filename, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"path": rel})
}
