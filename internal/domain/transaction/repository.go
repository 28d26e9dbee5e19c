package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	// ListByCustomer returns the customer's entries newest-first. Each call
	// is a fresh query, not a live cursor.
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]Transaction, error)
}
