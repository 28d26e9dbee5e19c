package loanmock

import (
	"context"
	"testing"

	domain "paycrest-backend/internal/domain/loan"
)

func TestDefaults(t *testing.T) {
	m := &Repo{}
	ctx := context.Background()

	// writers are no-ops by default
	if err := m.Create(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}

	// readers fail loudly so a test never silently proceeds on a zero value
	if _, err := m.GetByID(ctx, 1); err == nil {
		t.Fatalf("GetByID default should error")
	}
	if _, err := m.ListByCustomer(ctx, 1); err == nil {
		t.Fatalf("ListByCustomer default should error")
	}
}

func TestFnFieldsAreUsed(t *testing.T) {
	want := &domain.Loan{ID: 7, Status: domain.StatusActive}
	m := &Repo{
		GetByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Loan, error) {
			if id != 7 {
				t.Fatalf("id = %d, want 7", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByIDForUpdate(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	if got != want {
		t.Fatalf("wrong loan returned")
	}
}
