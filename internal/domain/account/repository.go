package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	Save(ctx context.Context, a *Account) error
	GetByCustomerID(ctx context.Context, customerID int64) (*Account, error)
	// GetByCustomerIDForUpdate locks the account row for the enclosing
	// transaction so concurrent balance mutations serialize.
	GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*Account, error)
}
