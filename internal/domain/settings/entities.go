package settings

import "time"

// Defaults applied when the singleton row does not exist yet.
const (
	DefaultPersonalLoanInterest = 12.0
	DefaultVehicleLoanInterest  = 10.0
	DefaultMinCibilRequired     = 650
)

// Settings is a single-row table holding the tunables admins may change.
type Settings struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	PersonalLoanInterest float64   `gorm:"type:decimal(6,2)" json:"personal_loan_interest"`
	VehicleLoanInterest  float64   `gorm:"type:decimal(6,2)" json:"vehicle_loan_interest"`
	MinCibilRequired     int       `json:"min_cibil_required"`
	UpdatedBy            *int64    `json:"updated_by,omitempty"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string { return "system_settings" }
