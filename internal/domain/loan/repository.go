package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id int64) (*Loan, error)
	// GetByIDForUpdate locks the loan row for the duration of the enclosing
	// transaction. Workflow transitions go through this to avoid lost updates.
	GetByIDForUpdate(ctx context.Context, id int64) (*Loan, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Loan, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]Loan, error)
	// ListOverdueActive returns active loans whose next EMI due date is
	// strictly before the given instant.
	ListOverdueActive(ctx context.Context, before time.Time) ([]Loan, error)
}
