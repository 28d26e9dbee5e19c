package settings

import (
	"context"

	settingsDomain "paycrest-backend/internal/domain/settings"
)

type Usecase struct{ repo settingsDomain.Repository }

func NewUsecase(r settingsDomain.Repository) *Usecase { return &Usecase{repo: r} }

type UpdateInput struct {
	PersonalLoanInterest *float64 `json:"personal_loan_interest" validate:"omitempty,gte=0,lte=100"`
	VehicleLoanInterest  *float64 `json:"vehicle_loan_interest" validate:"omitempty,gte=0,lte=100"`
	MinCibilRequired     *int     `json:"min_cibil_required" validate:"omitempty,gte=300,lte=850"`
}

func (u *Usecase) Get(ctx context.Context) (*settingsDomain.Settings, error) {
	return u.repo.Get(ctx)
}

// Update applies the provided fields and stamps the acting admin.
func (u *Usecase) Update(ctx context.Context, adminID int64, in UpdateInput) (*settingsDomain.Settings, error) {
	s, err := u.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if in.PersonalLoanInterest != nil {
		s.PersonalLoanInterest = *in.PersonalLoanInterest
	}
	if in.VehicleLoanInterest != nil {
		s.VehicleLoanInterest = *in.VehicleLoanInterest
	}
	if in.MinCibilRequired != nil {
		s.MinCibilRequired = *in.MinCibilRequired
	}
	s.UpdatedBy = &adminID
	if err := u.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
