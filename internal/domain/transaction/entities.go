package transaction

import "time"

type Kind string

const (
	KindCredit       Kind = "credit"
	KindDebit        Kind = "debit"
	KindDisbursement Kind = "disbursement"
	KindEMI          Kind = "emi"
)

// Transaction is an immutable ledger entry: created exactly once per balance
// mutation, never updated or deleted.
type Transaction struct {
	// Sequential numeric id from the transaction_id sequence.
	ID         int64   `gorm:"primaryKey;column:id" json:"transaction_id"`
	CustomerID int64   `gorm:"index:idx_txns_customer" json:"customer_id"`
	LoanID     *int64  `gorm:"index:idx_txns_loan" json:"loan_id,omitempty"`
	LoanType   string  `gorm:"size:16" json:"loan_type,omitempty"`
	Kind       Kind    `gorm:"size:16;column:type" json:"type"`
	Amount     float64 `gorm:"type:decimal(18,2)" json:"amount"`
	// Account balance immediately after this entry was applied.
	BalanceAfter float64   `gorm:"type:decimal(18,2)" json:"balance_after"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
