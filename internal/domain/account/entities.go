package account

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateAccount  = errors.New("customer already has an account")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// Account is a customer's single cash account. Balance is mutated only by
// the ledger usecase, inside a transaction that locks the row and appends
// the matching transaction record.
type Account struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	CustomerID    int64   `gorm:"uniqueIndex:ux_accounts_customer" json:"customer_id"`
	AccountNumber int64   `gorm:"uniqueIndex:ux_accounts_number" json:"account_number"`
	IFSCCode      string  `gorm:"size:16" json:"ifsc_code"`
	Balance       float64 `gorm:"type:decimal(18,2)" json:"balance"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Account) TableName() string { return "bank_accounts" }
