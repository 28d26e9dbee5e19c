package kyc

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound  = errors.New("kyc not found")
	ErrDuplicate = errors.New("kyc already submitted")
)

// Record holds one customer's KYC submission. Sub-scores stay nil until the
// verification team reviews; after that the only writers are the bounded
// credit-score adjustments (EMI reward, missed-payment penalty).
type Record struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"-"`
	CustomerID int64 `gorm:"uniqueIndex:ux_kyc_customer" json:"customer_id"`

	FullName           string  `gorm:"size:120" json:"full_name"`
	DOB                string  `gorm:"size:10" json:"dob"`
	Nationality        string  `gorm:"size:40" json:"nationality"`
	Gender             string  `gorm:"size:10" json:"gender,omitempty"`
	FatherOrSpouseName string  `gorm:"size:120" json:"father_or_spouse_name,omitempty"`
	MaritalStatus      string  `gorm:"size:20" json:"marital_status,omitempty"`
	PhoneNumber        string  `gorm:"size:20" json:"phone_number,omitempty"`
	PANNumber          string  `gorm:"size:16" json:"pan_number,omitempty"`
	AadhaarNumber      string  `gorm:"size:16" json:"aadhaar_number,omitempty"`
	EmploymentStatus   string  `gorm:"size:20" json:"employment_status,omitempty"`
	EmploymentType     string  `gorm:"size:40" json:"employment_type,omitempty"`
	CompanyName        string  `gorm:"size:120" json:"company_name,omitempty"`
	MonthlyIncome      float64 `gorm:"type:decimal(18,2)" json:"monthly_income,omitempty"`
	ExistingEMIMonths  int     `json:"existing_emi_months,omitempty"`
	YearsOfExperience  int     `json:"years_of_experience,omitempty"`
	Address            string  `gorm:"type:text" json:"address,omitempty"`

	PanCardURL    string `gorm:"type:text" json:"pan_card_url,omitempty"`
	AadharCardURL string `gorm:"type:text" json:"aadhar_card_url,omitempty"`

	EmploymentScore *int `json:"employment_score"`
	IncomeScore     *int `json:"income_score"`
	EMIScore        *int `json:"emi_score"`
	ExperienceScore *int `json:"experience_score"`
	TotalScore      *int `json:"total_score"`
	CibilScore      *int `json:"cibil_score"`

	LoanEligible bool   `json:"loan_eligible"`
	Status       Status `gorm:"size:16;column:kyc_status;index" json:"kyc_status"`
	VerifiedBy   *int64 `json:"verified_by,omitempty"`
	Remarks      string `gorm:"type:text" json:"remarks,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Record) TableName() string { return "kyc_details" }
