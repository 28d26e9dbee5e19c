package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	kycDomain "paycrest-backend/internal/domain/kyc"
	loanDomain "paycrest-backend/internal/domain/loan"
	"paycrest-backend/internal/domain/sequence"
	txnDomain "paycrest-backend/internal/domain/transaction"
	"paycrest-backend/internal/domain/uow"
	"paycrest-backend/internal/usecase/creditscore"
	"paycrest-backend/internal/usecase/ledger"

	"gorm.io/gorm"
)

// emiCycle is the flat approximation of "next month". Not calendar-aware;
// product has been asked whether that is intentional.
const emiCycle = 30 * 24 * time.Hour

// Usecase drives the loan state machine. Ledger effects and credit-score
// nudges run inside the same transaction as the state change, with the loan
// row locked.
type Usecase struct {
	loanRepo   loanDomain.Repository
	uow        uow.UnitOfWork
	ledger     *ledger.Usecase
	credit     *creditscore.Usecase
	permissive bool
}

func NewUsecase(repo loanDomain.Repository, u uow.UnitOfWork, lg *ledger.Usecase, cs *creditscore.Usecase, permissive bool) *Usecase {
	return &Usecase{loanRepo: repo, uow: u, ledger: lg, credit: cs, permissive: permissive}
}

type ApplyInput struct {
	FullName          string  `json:"full_name" validate:"required"`
	PANNumber         string  `json:"pan_number" validate:"required"`
	BankAccountNumber int64   `json:"bank_account_number" validate:"required"`
	LoanAmount        float64 `json:"loan_amount" validate:"required,gt=0,dec2"`
	LoanPurpose       string  `json:"loan_purpose" validate:"required"`
	SalaryIncome      float64 `json:"salary_income" validate:"gte=0"`
	MonthlyAvgBalance float64 `json:"monthly_avg_balance" validate:"gte=0"`
	TenureMonths      int     `json:"tenure_months" validate:"required"`

	GuarantorName  string `json:"guarantor_name"`
	GuarantorPhone string `json:"guarantor_phone"`
	GuarantorPAN   string `json:"guarantor_pan"`
	PaySlipURL     string `json:"pay_slip_url"`

	// vehicle loans only
	VehicleType        string `json:"vehicle_type"`
	VehicleModel       string `json:"vehicle_model"`
	VehiclePriceDocURL string `json:"vehicle_price_doc_url"`
}

// Apply creates a loan in state applied. The customer must hold an approved
// KYC record; the interest rate comes from system settings per category.
func (u *Usecase) Apply(ctx context.Context, category loanDomain.Category, customerID int64, in ApplyInput) (*loanDomain.Loan, error) {
	if in.TenureMonths <= 0 {
		return nil, loanDomain.ErrInvalidTenure
	}
	var out *loanDomain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rec, err := r.KYC.GetByCustomerID(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrKYCNotApproved
			}
			return err
		}
		if rec.Status != kycDomain.StatusApproved {
			return loanDomain.ErrKYCNotApproved
		}

		cfg, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}
		rate := cfg.PersonalLoanInterest
		if category == loanDomain.CategoryVehicle {
			rate = cfg.VehicleLoanInterest
		}

		emi, err := loanDomain.ComputeEMI(in.LoanAmount, rate, in.TenureMonths)
		if err != nil {
			return err
		}

		id, err := r.Sequences.Next(ctx, sequence.LoanID)
		if err != nil {
			return err
		}

		cibilAtApply := 0
		if rec.CibilScore != nil {
			cibilAtApply = *rec.CibilScore
		}
		now := time.Now().UTC()
		l := &loanDomain.Loan{
			ID:                 id,
			CustomerID:         customerID,
			Category:           category,
			FullName:           in.FullName,
			PANNumber:          in.PANNumber,
			BankAccountNumber:  in.BankAccountNumber,
			LoanAmount:         in.LoanAmount,
			LoanPurpose:        in.LoanPurpose,
			SalaryIncome:       in.SalaryIncome,
			MonthlyAvgBalance:  in.MonthlyAvgBalance,
			TenureMonths:       in.TenureMonths,
			GuarantorName:      in.GuarantorName,
			GuarantorPhone:     in.GuarantorPhone,
			GuarantorPAN:       in.GuarantorPAN,
			PaySlipURL:         in.PaySlipURL,
			VehicleType:        in.VehicleType,
			VehicleModel:       in.VehicleModel,
			VehiclePriceDocURL: in.VehiclePriceDocURL,
			EMIPerMonth:        emi,
			RemainingTenure:    in.TenureMonths,
			RemainingAmount:    loanDomain.Round2(emi * float64(in.TenureMonths)),
			TotalPaid:          0,
			CibilScoreAtApply:  cibilAtApply,
			MaxEligibleAmount:  in.SalaryIncome * 60, // simplistic
			Status:             loanDomain.StatusApplied,
			NextEMIDue:         now.Add(emiCycle),
			AppliedAt:          now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transition moves the loan to the target status under the row lock,
// checking the transition table unless running permissively.
func (u *Usecase) transition(ctx context.Context, loanID int64, to loanDomain.Status, mutate func(l *loanDomain.Loan)) (*loanDomain.Loan, error) {
	var out *loanDomain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if !u.permissive && !loanDomain.CanTransition(l.Status, to) {
			return fmt.Errorf("%w: %s -> %s", loanDomain.ErrInvalidTransition, l.Status, to)
		}
		l.Status = to
		if mutate != nil {
			mutate(l)
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

// AssignVerification hands the loan to a verification officer.
func (u *Usecase) AssignVerification(ctx context.Context, loanID, verifierID int64) error {
	_, err := u.transition(ctx, loanID, loanDomain.StatusAssignedToVerification, func(l *loanDomain.Loan) {
		l.VerificationID = &verifierID
	})
	return err
}

// VerificationDecision records the verification outcome.
func (u *Usecase) VerificationDecision(ctx context.Context, loanID int64, approved bool) error {
	to := loanDomain.StatusVerificationDone
	if !approved {
		to = loanDomain.StatusRejected
	}
	_, err := u.transition(ctx, loanID, to, nil)
	return err
}

// ManagerDecision approves or rejects at the manager step. Amounts above
// ManagerApprovalLimit escalate to admin approval instead of closing here.
func (u *Usecase) ManagerDecision(ctx context.Context, loanID, managerID int64, approve bool) error {
	if !approve {
		_, err := u.transition(ctx, loanID, loanDomain.StatusRejected, func(l *loanDomain.Loan) {
			l.ManagerID = &managerID
		})
		return err
	}
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		to := loanDomain.StatusManagerApproved
		if l.LoanAmount > loanDomain.ManagerApprovalLimit {
			to = loanDomain.StatusPendingAdminApproval
		}
		if !u.permissive && !loanDomain.CanTransition(l.Status, to) {
			return fmt.Errorf("%w: %s -> %s", loanDomain.ErrInvalidTransition, l.Status, to)
		}
		now := time.Now().UTC()
		l.Status = to
		l.ManagerID = &managerID
		if to == loanDomain.StatusManagerApproved {
			l.ApprovedAt = &now
		}
		return r.Loans.Save(ctx, l)
	})
	return notFound(err)
}

// AdminApprove is the final step for loans above the manager limit. The
// amount and prior-status guards hold in permissive mode too: the admin must
// never override a manager-final decision.
func (u *Usecase) AdminApprove(ctx context.Context, loanID, adminID int64) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.LoanAmount <= loanDomain.ManagerApprovalLimit {
			return loanDomain.ErrAdminApprovalNotRequired
		}
		if l.Status != loanDomain.StatusPendingAdminApproval {
			return fmt.Errorf("%w: status %s", loanDomain.ErrNotPendingAdminApproval, l.Status)
		}
		now := time.Now().UTC()
		l.Status = loanDomain.StatusAdminApproved
		l.AdminID = &adminID
		l.ApprovedAt = &now
		return r.Loans.Save(ctx, l)
	})
	return notFound(err)
}

// SendSanction records that the sanction letter went out.
func (u *Usecase) SendSanction(ctx context.Context, loanID int64) error {
	_, err := u.transition(ctx, loanID, loanDomain.StatusSanctionSent, nil)
	return err
}

// MarkSigned records receipt of the signed sanction letter.
func (u *Usecase) MarkSigned(ctx context.Context, loanID int64) error {
	_, err := u.transition(ctx, loanID, loanDomain.StatusSignedReceived, nil)
	return err
}

// Disburse credits the customer's account with the principal, appends the
// disbursement ledger entry and activates the loan. A loan is disbursed at
// most once; the guard holds even in permissive mode.
func (u *Usecase) Disburse(ctx context.Context, loanID int64) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Disbursed() {
			return loanDomain.ErrAlreadyDisbursed
		}
		if !u.permissive && !loanDomain.CanTransition(l.Status, loanDomain.StatusActive) {
			return fmt.Errorf("%w: %s -> %s", loanDomain.ErrInvalidTransition, l.Status, loanDomain.StatusActive)
		}
		if _, err := u.ledger.CreditIn(ctx, r, ledger.Entry{
			CustomerID: l.CustomerID,
			Amount:     l.LoanAmount,
			Kind:       txnDomain.KindDisbursement,
			LoanID:     &l.ID,
			LoanType:   string(l.Category),
		}); err != nil {
			return err
		}
		now := time.Now().UTC()
		l.Status = loanDomain.StatusActive
		l.DisbursedAt = &now
		l.NextEMIDue = now.Add(emiCycle)
		return r.Loans.Save(ctx, l)
	})
	return notFound(err)
}

// PayEMI debits one installment, updates the amortization counters and
// rewards the credit score, all inside one transaction. The loan completes
// when the last installment clears.
func (u *Usecase) PayEMI(ctx context.Context, loanID, customerID int64) (*loanDomain.Loan, error) {
	var out *loanDomain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.CustomerID != customerID {
			return loanDomain.ErrNotFound
		}
		if l.Status != loanDomain.StatusActive {
			return fmt.Errorf("%w: status %s", loanDomain.ErrLoanNotActive, l.Status)
		}
		if _, err := u.ledger.DebitIn(ctx, r, ledger.Entry{
			CustomerID: customerID,
			Amount:     l.EMIPerMonth,
			Kind:       txnDomain.KindEMI,
			LoanID:     &l.ID,
			LoanType:   string(l.Category),
		}); err != nil {
			return err
		}
		now := time.Now().UTC()
		l.RemainingTenure--
		l.RemainingAmount = loanDomain.Round2(l.RemainingAmount - l.EMIPerMonth)
		l.TotalPaid = loanDomain.Round2(l.TotalPaid + l.EMIPerMonth)
		l.NextEMIDue = now.Add(emiCycle)
		if l.RemainingTenure <= 0 {
			l.Status = loanDomain.StatusCompleted
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		// best-effort reward; a missing KYC record is not an error here
		if _, err := u.credit.RewardEMIPaymentIn(ctx, r, customerID); err != nil && !errors.Is(err, kycDomain.ErrNotFound) {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

// PayEMIByID resolves the loan across both categories by its sequential id
// and pays one installment. Unlike the legacy try-personal-then-vehicle
// fallback, a business failure (wrong owner, inactive loan, short balance)
// surfaces as-is instead of being masked as "wrong category".
func (u *Usecase) PayEMIByID(ctx context.Context, loanID, customerID int64) (*loanDomain.Loan, error) {
	return u.PayEMI(ctx, loanID, customerID)
}

// Get returns one loan by its sequential id.
func (u *Usecase) Get(ctx context.Context, loanID int64) (*loanDomain.Loan, error) {
	l, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

// ListForCustomer returns the customer's loans across both categories.
func (u *Usecase) ListForCustomer(ctx context.Context, customerID int64) ([]loanDomain.Loan, error) {
	return u.loanRepo.ListByCustomer(ctx, customerID)
}

// ListForManager returns the loans a manager acts on.
func (u *Usecase) ListForManager(ctx context.Context) ([]loanDomain.Loan, error) {
	return u.loanRepo.ListByStatus(ctx,
		loanDomain.StatusApplied,
		loanDomain.StatusVerificationDone,
		loanDomain.StatusPendingAdminApproval,
	)
}

// ListPendingAdminApprovals returns the escalated loans awaiting the admin.
func (u *Usecase) ListPendingAdminApprovals(ctx context.Context) ([]loanDomain.Loan, error) {
	return u.loanRepo.ListByStatus(ctx, loanDomain.StatusPendingAdminApproval)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}
