package http

import (
	"errors"
	"net/http"

	accountDomain "paycrest-backend/internal/domain/account"
	kycDomain "paycrest-backend/internal/domain/kyc"
	loanDomain "paycrest-backend/internal/domain/loan"
	userDomain "paycrest-backend/internal/domain/user"
	"paycrest-backend/internal/adapter/storage"
	authUsecase "paycrest-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

// domainStatus maps the domain sentinels to HTTP status codes. Anything
// unmapped is a 500.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, kycDomain.ErrNotFound),
		errors.Is(err, userDomain.ErrNotFound),
		errors.Is(err, accountDomain.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, authUsecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, userDomain.ErrDuplicateEmail),
		errors.Is(err, kycDomain.ErrDuplicate),
		errors.Is(err, accountDomain.ErrDuplicateAccount),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrAlreadyDisbursed),
		errors.Is(err, loanDomain.ErrNotPendingAdminApproval):
		return http.StatusConflict
	case errors.Is(err, accountDomain.ErrInsufficientFunds),
		errors.Is(err, accountDomain.ErrNonPositiveAmount),
		errors.Is(err, loanDomain.ErrKYCNotApproved),
		errors.Is(err, loanDomain.ErrInvalidTenure),
		errors.Is(err, loanDomain.ErrInvalidEMIParameters),
		errors.Is(err, loanDomain.ErrLoanNotActive),
		errors.Is(err, loanDomain.ErrAdminApprovalNotRequired),
		errors.Is(err, userDomain.ErrInvalidRole),
		errors.Is(err, storage.ErrNotPDF),
		errors.Is(err, storage.ErrBadFilename):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail renders a domain error with its mapped status, hiding internals behind
// a generic message on 500s.
func fail(c echo.Context, err error) error {
	code := domainStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// bindAndValidate decodes the JSON body into dst and runs struct validation,
// writing the error response itself. Returns false when the request is bad.
func bindAndValidate(c echo.Context, dst any) bool {
	if err := c.Bind(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return false
	}
	if err := c.Validate(dst); err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
		return false
	}
	return true
}
