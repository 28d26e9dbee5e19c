package loan

import (
	"errors"
	"time"
)

type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryVehicle  Category = "vehicle"
)

var (
	ErrNotFound                 = errors.New("loan not found")
	ErrKYCNotApproved           = errors.New("kyc not approved")
	ErrInvalidTenure            = errors.New("tenure_months must be greater than 0")
	ErrInvalidEMIParameters     = errors.New("invalid parameters for emi calculation")
	ErrInvalidTransition        = errors.New("invalid loan state transition")
	ErrLoanNotActive            = errors.New("loan not active")
	ErrAdminApprovalNotRequired = errors.New("admin approval not required for this loan amount")
	ErrNotPendingAdminApproval  = errors.New("loan not pending admin approval")
	ErrAlreadyDisbursed         = errors.New("loan already disbursed")
)

// ManagerApprovalLimit is the largest amount a manager may finally approve.
// Anything above it escalates to admin approval.
const ManagerApprovalLimit = 1_500_000

type Loan struct {
	// Sequential numeric id from the loan_id sequence; doubles as the
	// public reference customers quote.
	ID         int64    `gorm:"primaryKey;column:id" json:"loan_id"`
	CustomerID int64    `gorm:"index:idx_loans_customer" json:"customer_id"`
	Category   Category `gorm:"type:enum('personal','vehicle');index" json:"category"`

	FullName          string  `gorm:"size:120" json:"full_name"`
	PANNumber         string  `gorm:"size:16" json:"pan_number"`
	BankAccountNumber int64   `json:"bank_account_number"`
	LoanAmount        float64 `gorm:"type:decimal(18,2)" json:"loan_amount"`
	LoanPurpose       string  `gorm:"type:text" json:"loan_purpose"`
	SalaryIncome      float64 `gorm:"type:decimal(18,2)" json:"salary_income"`
	MonthlyAvgBalance float64 `gorm:"type:decimal(18,2)" json:"monthly_avg_balance"`
	TenureMonths      int     `json:"tenure_months"`

	GuarantorName  string `gorm:"size:120" json:"guarantor_name,omitempty"`
	GuarantorPhone string `gorm:"size:20" json:"guarantor_phone,omitempty"`
	GuarantorPAN   string `gorm:"size:16" json:"guarantor_pan,omitempty"`
	PaySlipURL     string `gorm:"type:text" json:"pay_slip_url,omitempty"`

	// Vehicle-category fields; empty on personal loans.
	VehicleType        string `gorm:"size:40" json:"vehicle_type,omitempty"`
	VehicleModel       string `gorm:"size:80" json:"vehicle_model,omitempty"`
	VehiclePriceDocURL string `gorm:"type:text" json:"vehicle_price_doc_url,omitempty"`

	EMIPerMonth       float64 `gorm:"type:decimal(18,2)" json:"emi_per_month"`
	RemainingTenure   int     `json:"remaining_tenure"`
	RemainingAmount   float64 `gorm:"type:decimal(18,2)" json:"remaining_amount"`
	TotalPaid         float64 `gorm:"type:decimal(18,2)" json:"total_paid"`
	CibilScoreAtApply int     `json:"cibil_score_at_apply"`
	MaxEligibleAmount float64 `gorm:"type:decimal(18,2)" json:"max_eligible_amount"`

	Status         Status `gorm:"size:32;index" json:"status"`
	ManagerID      *int64 `json:"manager_id,omitempty"`
	VerificationID *int64 `json:"verification_id,omitempty"`
	AdminID        *int64 `json:"admin_id,omitempty"`

	NextEMIDue  time.Time  `gorm:"index" json:"next_emi_date"`
	AppliedAt   time.Time  `json:"applied_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	DisbursedAt *time.Time `json:"disbursed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Disbursed reports whether the ledger has already been credited for this
// loan. Active implies disbursed; the timestamp survives completion.
func (l *Loan) Disbursed() bool { return l.DisbursedAt != nil }
