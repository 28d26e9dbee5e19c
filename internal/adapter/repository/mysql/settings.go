package mysql

import (
	"context"
	"errors"

	settingsDomain "paycrest-backend/internal/domain/settings"

	"gorm.io/gorm"
)

type SettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{db: db} }

// Get returns the singleton settings row, seeding defaults on first read.
func (r *SettingsRepository) Get(ctx context.Context) (*settingsDomain.Settings, error) {
	var out settingsDomain.Settings
	res := r.db.WithContext(ctx).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		out = settingsDomain.Settings{
			PersonalLoanInterest: settingsDomain.DefaultPersonalLoanInterest,
			VehicleLoanInterest:  settingsDomain.DefaultVehicleLoanInterest,
			MinCibilRequired:     settingsDomain.DefaultMinCibilRequired,
		}
		if err := r.db.WithContext(ctx).Create(&out).Error; err != nil {
			return nil, err
		}
		return &out, nil
	}
	return &out, res.Error
}

func (r *SettingsRepository) Save(ctx context.Context, s *settingsDomain.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
