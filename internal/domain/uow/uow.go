package uow

import (
	"context"

	"paycrest-backend/internal/domain/account"
	"paycrest-backend/internal/domain/kyc"
	"paycrest-backend/internal/domain/loan"
	"paycrest-backend/internal/domain/sequence"
	"paycrest-backend/internal/domain/settings"
	"paycrest-backend/internal/domain/transaction"
	"paycrest-backend/internal/domain/user"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Users        user.Repository
	Accounts     account.Repository
	Transactions transaction.Repository
	KYC          kyc.Repository
	Loans        loan.Repository
	Settings     settings.Repository
	Sequences    sequence.Generator
}

type UnitOfWork interface {
	// WithinTx runs fn in a single database transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up-front, then runs fn in the same
	// transaction. Every workflow transition uses this so concurrent writers
	// (including the penalty scanner) serialize on the loan.
	WithinLoanTx(ctx context.Context, loanID int64, fn func(r Repos, l *loan.Loan) error) error
}
