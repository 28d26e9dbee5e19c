package customer

import (
	"context"
	"errors"

	accountDomain "paycrest-backend/internal/domain/account"
	kycDomain "paycrest-backend/internal/domain/kyc"
	loanDomain "paycrest-backend/internal/domain/loan"
	userDomain "paycrest-backend/internal/domain/user"

	"gorm.io/gorm"
)

// Usecase assembles the customer's profile dashboard from read-only lookups.
type Usecase struct {
	users    userDomain.Repository
	accounts accountDomain.Repository
	kycs     kycDomain.Repository
	loans    loanDomain.Repository
}

func NewUsecase(users userDomain.Repository, accounts accountDomain.Repository, kycs kycDomain.Repository, loans loanDomain.Repository) *Usecase {
	return &Usecase{users: users, accounts: accounts, kycs: kycs, loans: loans}
}

type Profile struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	AccountNumber   int64   `json:"account_number"`
	IFSC            string  `json:"ifsc"`
	Balance         float64 `json:"balance"`
	CibilScore      *int    `json:"cibil_score"`
	KYCStatus       string  `json:"kyc_status"`
	ActiveLoans     int     `json:"active_loans"`
	RemainingTenure int     `json:"remaining_tenure"`
	RemainingAmount float64 `json:"remaining_amount"`
}

func (u *Usecase) Dashboard(ctx context.Context, customerID int64) (*Profile, error) {
	p := &Profile{KYCStatus: "not_submitted"}

	usr, err := u.users.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userDomain.ErrNotFound
		}
		return nil, err
	}
	p.Name = usr.FullName
	p.Email = usr.Email

	if acc, err := u.accounts.GetByCustomerID(ctx, customerID); err == nil {
		p.AccountNumber = acc.AccountNumber
		p.IFSC = acc.IFSCCode
		p.Balance = acc.Balance
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if rec, err := u.kycs.GetByCustomerID(ctx, customerID); err == nil {
		p.CibilScore = rec.CibilScore
		p.KYCStatus = string(rec.Status)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	loans, err := u.loans.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, l := range loans {
		switch l.Status {
		case loanDomain.StatusActive, loanDomain.StatusAdminApproved, loanDomain.StatusManagerApproved:
			p.ActiveLoans++
			p.RemainingTenure += l.RemainingTenure
			p.RemainingAmount += l.RemainingAmount
		}
	}
	p.RemainingAmount = loanDomain.Round2(p.RemainingAmount)
	return p, nil
}
