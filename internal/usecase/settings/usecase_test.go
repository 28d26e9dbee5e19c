package settings

import (
	"context"
	"testing"

	"paycrest-backend/internal/adapter/repository/mysql"
	settingsDomain "paycrest-backend/internal/domain/settings"
	"paycrest-backend/internal/testutil/dbtest"
)

func newSettings(t *testing.T) *Usecase {
	t.Helper()
	return NewUsecase(mysql.NewSettingsRepository(dbtest.Open(t)))
}

func TestGet_SeedsDefaultsOnFirstRead(t *testing.T) {
	uc := newSettings(t)

	s, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.PersonalLoanInterest != settingsDomain.DefaultPersonalLoanInterest ||
		s.VehicleLoanInterest != settingsDomain.DefaultVehicleLoanInterest ||
		s.MinCibilRequired != settingsDomain.DefaultMinCibilRequired {
		t.Fatalf("defaults not seeded: %+v", s)
	}
	if s.UpdatedBy != nil {
		t.Fatalf("fresh settings must not carry an updater: %v", *s.UpdatedBy)
	}
}

func TestUpdate_PartialFieldsAndAdminStamp(t *testing.T) {
	uc := newSettings(t)
	ctx := context.Background()

	rate := 13.5
	s, err := uc.Update(ctx, 401, UpdateInput{PersonalLoanInterest: &rate})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if s.PersonalLoanInterest != 13.5 {
		t.Fatalf("personal rate = %v, want 13.5", s.PersonalLoanInterest)
	}
	// untouched fields keep their values
	if s.VehicleLoanInterest != settingsDomain.DefaultVehicleLoanInterest {
		t.Fatalf("vehicle rate changed: %v", s.VehicleLoanInterest)
	}
	if s.UpdatedBy == nil || *s.UpdatedBy != 401 {
		t.Fatalf("updater not stamped: %v", s.UpdatedBy)
	}

	// the singleton row persists; a second reader sees the update
	got, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PersonalLoanInterest != 13.5 {
		t.Fatalf("update not persisted: %v", got.PersonalLoanInterest)
	}

	min := 700
	got, err = uc.Update(ctx, 402, UpdateInput{MinCibilRequired: &min})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.MinCibilRequired != 700 || got.PersonalLoanInterest != 13.5 {
		t.Fatalf("second update wrong: %+v", got)
	}
}
