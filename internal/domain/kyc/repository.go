package kyc

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	Save(ctx context.Context, r *Record) error
	GetByCustomerID(ctx context.Context, customerID int64) (*Record, error)
	// GetByCustomerIDForUpdate locks the record row for the enclosing
	// transaction; credit-score adjustments go through this.
	GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*Record, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Record, error)
}
