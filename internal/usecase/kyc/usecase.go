package kyc

import (
	"context"
	"errors"
	"time"

	kycDomain "paycrest-backend/internal/domain/kyc"
	loanDomain "paycrest-backend/internal/domain/loan"
	"paycrest-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct {
	kycRepo  kycDomain.Repository
	loanRepo loanDomain.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(kycRepo kycDomain.Repository, loanRepo loanDomain.Repository, u uow.UnitOfWork) *Usecase {
	return &Usecase{kycRepo: kycRepo, loanRepo: loanRepo, uow: u}
}

type SubmitInput struct {
	FullName           string  `json:"full_name" validate:"required"`
	DOB                string  `json:"dob" validate:"required"`
	Nationality        string  `json:"nationality" validate:"required"`
	Gender             string  `json:"gender"`
	FatherOrSpouseName string  `json:"father_or_spouse_name"`
	MaritalStatus      string  `json:"marital_status"`
	PhoneNumber        string  `json:"phone_number"`
	PANNumber          string  `json:"pan_number"`
	AadhaarNumber      string  `json:"aadhaar_number"`
	EmploymentStatus   string  `json:"employment_status"`
	EmploymentType     string  `json:"employment_type"`
	CompanyName        string  `json:"company_name"`
	MonthlyIncome      float64 `json:"monthly_income" validate:"gte=0"`
	ExistingEMIMonths  int     `json:"existing_emi_months" validate:"gte=0"`
	YearsOfExperience  int     `json:"years_of_experience" validate:"gte=0"`
	Address            string  `json:"address"`
	PanCardURL         string  `json:"pan_card_url"`
	AadharCardURL      string  `json:"aadhar_card_url"`
}

type Subscores struct {
	Employment int `json:"employment_score" validate:"gte=0,lte=25"`
	Income     int `json:"income_score" validate:"gte=0,lte=25"`
	EMIHistory int `json:"emi_score" validate:"gte=0,lte=25"`
	Experience int `json:"experience_score" validate:"gte=0,lte=25"`
}

// Submit stores the raw KYC details with status pending. Scores stay unset
// until the verification team reviews.
func (u *Usecase) Submit(ctx context.Context, customerID int64, in SubmitInput) (*kycDomain.Record, error) {
	existing, err := u.kycRepo.GetByCustomerID(ctx, customerID)
	switch {
	case err == nil && existing != nil:
		return nil, kycDomain.ErrDuplicate
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	rec := &kycDomain.Record{
		CustomerID:         customerID,
		FullName:           in.FullName,
		DOB:                in.DOB,
		Nationality:        in.Nationality,
		Gender:             in.Gender,
		FatherOrSpouseName: in.FatherOrSpouseName,
		MaritalStatus:      in.MaritalStatus,
		PhoneNumber:        in.PhoneNumber,
		PANNumber:          in.PANNumber,
		AadhaarNumber:      in.AadhaarNumber,
		EmploymentStatus:   in.EmploymentStatus,
		EmploymentType:     in.EmploymentType,
		CompanyName:        in.CompanyName,
		MonthlyIncome:      in.MonthlyIncome,
		ExistingEMIMonths:  in.ExistingEMIMonths,
		YearsOfExperience:  in.YearsOfExperience,
		Address:            in.Address,
		PanCardURL:         in.PanCardURL,
		AadharCardURL:      in.AadharCardURL,
		Status:             kycDomain.StatusPending,
		SubmittedAt:        time.Now().UTC(),
	}
	if err := u.kycRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SelfEstimate maps the raw submission fields to an indicative score using
// the same mapping verification applies later.
func (u *Usecase) SelfEstimate(in SubmitInput) kycDomain.ScoreResult {
	e, i, h, x := kycDomain.EstimateSubscores(in.EmploymentStatus, in.MonthlyIncome, in.ExistingEMIMonths, in.YearsOfExperience)
	return kycDomain.ScoreFromSubscores(e, i, h, x)
}

// Verify records the reviewer's sub-scores, derives the CIBIL tier, stamps
// the reviewer and flips the user's kyc-verified flag, all in one
// transaction.
func (u *Usecase) Verify(ctx context.Context, customerID, verifierID int64, approve bool, scores Subscores, remarks string) (*kycDomain.Record, error) {
	var out *kycDomain.Record
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rec, err := r.KYC.GetByCustomerIDForUpdate(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return kycDomain.ErrNotFound
			}
			return err
		}

		res := kycDomain.ScoreFromSubscores(scores.Employment, scores.Income, scores.EMIHistory, scores.Experience)
		now := time.Now().UTC()

		rec.EmploymentScore = &scores.Employment
		rec.IncomeScore = &scores.Income
		rec.EMIScore = &scores.EMIHistory
		rec.ExperienceScore = &scores.Experience
		rec.TotalScore = &res.TotalScore
		rec.CibilScore = &res.CibilScore
		rec.LoanEligible = res.Eligible
		if approve {
			rec.Status = kycDomain.StatusApproved
		} else {
			rec.Status = kycDomain.StatusRejected
		}
		rec.VerifiedBy = &verifierID
		rec.Remarks = remarks
		rec.VerifiedAt = &now
		if err := r.KYC.Save(ctx, rec); err != nil {
			return err
		}

		usr, err := r.Users.GetByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// kyc can outlive a deleted user; nothing to flip
				out = rec
				return nil
			}
			return err
		}
		usr.IsKYCVerified = approve
		if err := r.Users.Save(ctx, usr); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns the customer's KYC record.
func (u *Usecase) Lookup(ctx context.Context, customerID int64) (*kycDomain.Record, error) {
	rec, err := u.kycRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, kycDomain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Dashboard bundles what the verification team works through: pending KYC
// submissions and loans waiting on verification.
type Dashboard struct {
	PendingKYC             []kycDomain.Record `json:"pending_kyc"`
	PendingLoanVerifications []loanDomain.Loan `json:"pending_loan_verifications"`
}

func (u *Usecase) VerificationDashboard(ctx context.Context) (*Dashboard, error) {
	pending, err := u.kycRepo.ListByStatus(ctx, kycDomain.StatusPending, 100)
	if err != nil {
		return nil, err
	}
	loans, err := u.loanRepo.ListByStatus(ctx, loanDomain.StatusAssignedToVerification)
	if err != nil {
		return nil, err
	}
	return &Dashboard{PendingKYC: pending, PendingLoanVerifications: loans}, nil
}
