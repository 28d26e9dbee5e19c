package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountDomain "paycrest-backend/internal/domain/account"
	"paycrest-backend/internal/domain/sequence"
	txnDomain "paycrest-backend/internal/domain/transaction"
	"paycrest-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase owns bank accounts and the append-only transaction log. Every
// balance mutation locks the account row and appends exactly one transaction
// in the same database transaction.
type Usecase struct {
	uow         uow.UnitOfWork
	txns        txnDomain.Repository
	defaultIFSC string
}

func NewUsecase(u uow.UnitOfWork, txns txnDomain.Repository, defaultIFSC string) *Usecase {
	return &Usecase{uow: u, txns: txns, defaultIFSC: defaultIFSC}
}

// Entry describes one balance mutation to apply.
type Entry struct {
	CustomerID int64
	Amount     float64
	Kind       txnDomain.Kind
	LoanID     *int64
	LoanType   string
}

func (u *Usecase) CreateAccount(ctx context.Context, customerID int64) (*accountDomain.Account, error) {
	var out *accountDomain.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = u.CreateAccountIn(ctx, r, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAccountIn assigns a fresh account number and creates the account
// inside an existing transaction. One account per customer.
func (u *Usecase) CreateAccountIn(ctx context.Context, r uow.Repos, customerID int64) (*accountDomain.Account, error) {
	_, err := r.Accounts.GetByCustomerID(ctx, customerID)
	switch {
	case err == nil:
		return nil, accountDomain.ErrDuplicateAccount
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	number, err := r.Sequences.Next(ctx, sequence.AccountNumber)
	if err != nil {
		return nil, err
	}
	acc := &accountDomain.Account{
		CustomerID:    customerID,
		AccountNumber: number,
		IFSCCode:      u.defaultIFSC,
		Balance:       0,
	}
	if err := r.Accounts.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Credit adds amount to the customer's balance and records a credit entry.
func (u *Usecase) Credit(ctx context.Context, customerID int64, amount float64) (*txnDomain.Transaction, error) {
	var out *txnDomain.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = u.CreditIn(ctx, r, Entry{CustomerID: customerID, Amount: amount, Kind: txnDomain.KindCredit})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Debit removes amount from the customer's balance and records an entry of
// the given kind. Fails without touching the balance when funds are short.
func (u *Usecase) Debit(ctx context.Context, customerID int64, amount float64, kind txnDomain.Kind) (*txnDomain.Transaction, error) {
	var out *txnDomain.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = u.DebitIn(ctx, r, Entry{CustomerID: customerID, Amount: amount, Kind: kind})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreditIn applies a credit inside an existing transaction. The account row
// stays locked until the caller's transaction commits.
func (u *Usecase) CreditIn(ctx context.Context, r uow.Repos, e Entry) (*txnDomain.Transaction, error) {
	if e.Amount <= 0 {
		return nil, accountDomain.ErrNonPositiveAmount
	}
	acc, err := r.Accounts.GetByCustomerIDForUpdate(ctx, e.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountDomain.ErrNotFound
		}
		return nil, err
	}
	acc.Balance += e.Amount
	if err := r.Accounts.Save(ctx, acc); err != nil {
		return nil, err
	}
	return u.appendEntry(ctx, r, e, acc.Balance)
}

// DebitIn applies a debit inside an existing transaction, refusing to drive
// the balance negative.
func (u *Usecase) DebitIn(ctx context.Context, r uow.Repos, e Entry) (*txnDomain.Transaction, error) {
	if e.Amount <= 0 {
		return nil, accountDomain.ErrNonPositiveAmount
	}
	acc, err := r.Accounts.GetByCustomerIDForUpdate(ctx, e.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountDomain.ErrNotFound
		}
		return nil, err
	}
	if acc.Balance < e.Amount {
		return nil, fmt.Errorf("%w: balance %.2f, need %.2f", accountDomain.ErrInsufficientFunds, acc.Balance, e.Amount)
	}
	acc.Balance -= e.Amount
	if err := r.Accounts.Save(ctx, acc); err != nil {
		return nil, err
	}
	return u.appendEntry(ctx, r, e, acc.Balance)
}

func (u *Usecase) appendEntry(ctx context.Context, r uow.Repos, e Entry, balanceAfter float64) (*txnDomain.Transaction, error) {
	id, err := r.Sequences.Next(ctx, sequence.TransactionID)
	if err != nil {
		return nil, err
	}
	t := &txnDomain.Transaction{
		ID:           id,
		CustomerID:   e.CustomerID,
		LoanID:       e.LoanID,
		LoanType:     e.LoanType,
		Kind:         e.Kind,
		Amount:       e.Amount,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.Transactions.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// TransactionsFor lists the customer's ledger entries newest-first.
func (u *Usecase) TransactionsFor(ctx context.Context, customerID int64, limit int) ([]txnDomain.Transaction, error) {
	return u.txns.ListByCustomer(ctx, customerID, limit)
}
