package creditscore

import (
	"context"
	"errors"

	kycDomain "paycrest-backend/internal/domain/kyc"
	"paycrest-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase owns the bounded mutations of the KYC record's credit score.
type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(u uow.UnitOfWork) *Usecase { return &Usecase{uow: u} }

// Adjust clamps current+delta into [floor, ceiling] and persists it.
func (u *Usecase) Adjust(ctx context.Context, customerID int64, delta, floor, ceiling int) (int, error) {
	var out int
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = u.AdjustIn(ctx, r, customerID, delta, floor, ceiling)
		return err
	})
	return out, err
}

// AdjustIn is Adjust running inside an existing transaction; the KYC row is
// locked until the caller's transaction commits.
func (u *Usecase) AdjustIn(ctx context.Context, r uow.Repos, customerID int64, delta, floor, ceiling int) (int, error) {
	rec, err := r.KYC.GetByCustomerIDForUpdate(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, kycDomain.ErrNotFound
		}
		return 0, err
	}
	cur := 0
	if rec.CibilScore != nil {
		cur = *rec.CibilScore
	}
	next := kycDomain.Clamp(cur+delta, floor, ceiling)
	rec.CibilScore = &next
	if err := r.KYC.Save(ctx, rec); err != nil {
		return 0, err
	}
	return next, nil
}

// RewardEMIPaymentIn nudges the score up by 1, capped at the ceiling.
func (u *Usecase) RewardEMIPaymentIn(ctx context.Context, r uow.Repos, customerID int64) (int, error) {
	return u.AdjustIn(ctx, r, customerID, +1, 0, kycDomain.ScoreCeiling)
}

// PenalizeMissedEMIIn drops the score by 5, floored at 300.
func (u *Usecase) PenalizeMissedEMIIn(ctx context.Context, r uow.Repos, customerID int64) (int, error) {
	return u.AdjustIn(ctx, r, customerID, -5, kycDomain.ScoreFloor, kycDomain.ScoreCeiling)
}
