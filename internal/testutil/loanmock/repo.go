package loanmock

import (
	"context"
	"time"

	domain "paycrest-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Loan) error
	SaveFn              func(ctx context.Context, l *domain.Loan) error
	GetByIDFn           func(ctx context.Context, id int64) (*domain.Loan, error)
	GetByIDForUpdateFn  func(ctx context.Context, id int64) (*domain.Loan, error)
	ListByCustomerFn    func(ctx context.Context, customerID int64) ([]domain.Loan, error)
	ListByStatusFn      func(ctx context.Context, statuses ...domain.Status) ([]domain.Loan, error)
	ListOverdueActiveFn func(ctx context.Context, before time.Time) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Loan, error) {
	if m.ListByCustomerFn != nil {
		return m.ListByCustomerFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses...)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOverdueActive(ctx context.Context, before time.Time) ([]domain.Loan, error) {
	if m.ListOverdueActiveFn != nil {
		return m.ListOverdueActiveFn(ctx, before)
	}
	return nil, context.Canceled
}
