package mysql

import (
	"context"

	"paycrest-backend/internal/domain/account"
	"paycrest-backend/internal/domain/kyc"
	"paycrest-backend/internal/domain/loan"
	"paycrest-backend/internal/domain/settings"
	"paycrest-backend/internal/domain/transaction"
	"paycrest-backend/internal/domain/uow"
	"paycrest-backend/internal/domain/user"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:        &UserRepository{db: tx},
		Accounts:     &AccountRepository{db: tx},
		Transactions: &TransactionRepository{db: tx},
		KYC:          &KYCRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		Settings:     &SettingsRepository{db: tx},
		Sequences:    &SequenceRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID int64, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

// Migrate creates or updates every table the backend owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&account.Account{},
		&transaction.Transaction{},
		&kyc.Record{},
		&loan.Loan{},
		&settings.Settings{},
		&Counter{},
	)
}
