package sequence

import "context"

// Named sequences and their base values. The first Next call on a sequence
// returns base+1.
const (
	AccountNumber = "account_number"
	CustomerID    = "customer_id"
	LoanID        = "loan_id"
	TransactionID = "transaction_id"
)

// Base returns the starting value for a named sequence.
func Base(name string) int64 {
	if name == AccountNumber {
		return 1_000_000_000
	}
	return 0
}

// Generator yields strictly increasing integers per sequence name.
// Implementations must use atomic find-and-increment semantics: no two
// callers may ever observe the same value for the same name.
type Generator interface {
	Next(ctx context.Context, name string) (int64, error)
}
