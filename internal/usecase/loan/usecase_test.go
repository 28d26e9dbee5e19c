package loan

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"paycrest-backend/internal/adapter/repository/mysql"
	accountDomain "paycrest-backend/internal/domain/account"
	kycDomain "paycrest-backend/internal/domain/kyc"
	loanDomain "paycrest-backend/internal/domain/loan"
	txnDomain "paycrest-backend/internal/domain/transaction"
	userDomain "paycrest-backend/internal/domain/user"
	"paycrest-backend/internal/testutil/dbtest"
	"paycrest-backend/internal/usecase/creditscore"
	"paycrest-backend/internal/usecase/ledger"

	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	loans  *mysql.LoanRepository
	kycs   *mysql.KYCRepository
	accts  *mysql.AccountRepository
	txns   *mysql.TransactionRepository
	ledger *ledger.Usecase
	uc     *Usecase
	ucPerm *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	uow := mysql.NewGormUoW(db)
	txns := mysql.NewTransactionRepository(db)
	loans := mysql.NewLoanRepository(db)
	lg := ledger.NewUsecase(uow, txns, "PCIN0000")
	cs := creditscore.NewUsecase(uow)
	return &fixture{
		db:     db,
		loans:  loans,
		kycs:   mysql.NewKYCRepository(db),
		accts:  mysql.NewAccountRepository(db),
		txns:   txns,
		ledger: lg,
		uc:     NewUsecase(loans, uow, lg, cs, false),
		ucPerm: NewUsecase(loans, uow, lg, cs, true),
	}
}

// seedCustomer creates a user with an approved KYC record (CIBIL 730) and a
// funded account.
func (f *fixture) seedCustomer(t *testing.T, id int64, balance float64) {
	t.Helper()
	ctx := context.Background()
	users := mysql.NewUserRepository(f.db)
	if err := users.Create(ctx, &userDomain.User{
		ID: id, FullName: "Asha Rao", Email: "asha@example.com",
		Role: userDomain.RoleCustomer, IsActive: true,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	cibil := 730
	if err := f.kycs.Create(ctx, &kycDomain.Record{
		CustomerID:  id,
		FullName:    "Asha Rao",
		Status:      kycDomain.StatusApproved,
		CibilScore:  &cibil,
		SubmittedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed kyc: %v", err)
	}
	if _, err := f.ledger.CreateAccount(ctx, id); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if balance > 0 {
		if _, err := f.ledger.Credit(ctx, id, balance); err != nil {
			t.Fatalf("seed balance: %v", err)
		}
	}
}

func applyInput(amount float64, tenure int) ApplyInput {
	return ApplyInput{
		FullName:          "Asha Rao",
		PANNumber:         "ABCDE1234F",
		BankAccountNumber: 1000000001,
		LoanAmount:        amount,
		LoanPurpose:       "home renovation",
		SalaryIncome:      75000,
		TenureMonths:      tenure,
	}
}

func TestApply_RequiresApprovedKYC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// no KYC at all
	_, err := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 999, applyInput(100000, 12))
	if !errors.Is(err, loanDomain.ErrKYCNotApproved) {
		t.Fatalf("no kyc: want ErrKYCNotApproved, got %v", err)
	}

	// pending KYC
	if err := f.kycs.Create(ctx, &kycDomain.Record{
		CustomerID: 7, Status: kycDomain.StatusPending, SubmittedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err = f.uc.Apply(ctx, loanDomain.CategoryPersonal, 7, applyInput(100000, 12))
	if !errors.Is(err, loanDomain.ErrKYCNotApproved) {
		t.Fatalf("pending kyc: want ErrKYCNotApproved, got %v", err)
	}
}

func TestApply_StampsEMIAndSnapshotFields(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)
	ctx := context.Background()

	l, err := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if l.ID != 1 {
		t.Fatalf("first loan id = %d, want 1", l.ID)
	}
	if l.Status != loanDomain.StatusApplied {
		t.Fatalf("status = %s, want applied", l.Status)
	}
	// default personal rate is 12% -> the classic 8884.88
	if l.EMIPerMonth != 8884.88 {
		t.Fatalf("emi = %v, want 8884.88", l.EMIPerMonth)
	}
	if l.RemainingTenure != 12 {
		t.Fatalf("remaining tenure = %d, want 12", l.RemainingTenure)
	}
	if l.RemainingAmount != 106618.56 {
		t.Fatalf("remaining amount = %v, want 106618.56", l.RemainingAmount)
	}
	if l.CibilScoreAtApply != 730 {
		t.Fatalf("cibil at apply = %d, want 730", l.CibilScoreAtApply)
	}
	if l.MaxEligibleAmount != 75000*60 {
		t.Fatalf("max eligible = %v, want %v", l.MaxEligibleAmount, 75000*60)
	}
	if l.NextEMIDue.Before(time.Now().UTC().Add(29 * 24 * time.Hour)) {
		t.Fatalf("next emi due too soon: %v", l.NextEMIDue)
	}
}

func TestApply_VehicleUsesVehicleRate(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)

	in := applyInput(100000, 12)
	in.VehicleType = "car"
	in.VehicleModel = "Swift"
	l, err := f.uc.Apply(context.Background(), loanDomain.CategoryVehicle, 101, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// default vehicle rate is 10%, cheaper than personal's 12%
	if l.EMIPerMonth >= 8884.88 {
		t.Fatalf("vehicle emi %v should be below the personal 8884.88", l.EMIPerMonth)
	}
	if l.Category != loanDomain.CategoryVehicle {
		t.Fatalf("category = %s, want vehicle", l.Category)
	}
}

// walks a loan from application to active through the standard path
func (f *fixture) approveAndDisburse(t *testing.T, loanID int64) {
	t.Helper()
	ctx := context.Background()
	if err := f.uc.AssignVerification(ctx, loanID, 201); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.uc.VerificationDecision(ctx, loanID, true); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := f.uc.ManagerDecision(ctx, loanID, 301, true); err != nil {
		t.Fatalf("manager: %v", err)
	}
	if err := f.uc.SendSanction(ctx, loanID); err != nil {
		t.Fatalf("sanction: %v", err)
	}
	if err := f.uc.MarkSigned(ctx, loanID); err != nil {
		t.Fatalf("signed: %v", err)
	}
	if err := f.uc.Disburse(ctx, loanID); err != nil {
		t.Fatalf("disburse: %v", err)
	}
}

func TestLifecycle_SmallLoan_ToCompletion(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 20000)
	ctx := context.Background()

	l, err := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	f.approveAndDisburse(t, l.ID)

	got, err := f.uc.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != loanDomain.StatusActive {
		t.Fatalf("status = %s, want active", got.Status)
	}
	if got.ManagerID == nil || *got.ManagerID != 301 {
		t.Fatalf("manager id not stamped: %+v", got.ManagerID)
	}
	if got.ApprovedAt == nil || got.DisbursedAt == nil {
		t.Fatalf("approval/disbursement timestamps missing")
	}

	// disbursement credited the principal
	acc, err := f.accts.GetByCustomerID(ctx, 101)
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if math.Abs(acc.Balance-120000) > 0.01 {
		t.Fatalf("balance after disburse = %v, want 120000", acc.Balance)
	}

	// pay every installment
	for i := 0; i < 12; i++ {
		if _, err := f.uc.PayEMI(ctx, l.ID, 101); err != nil {
			t.Fatalf("PayEMI %d: %v", i+1, err)
		}
	}
	got, err = f.uc.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != loanDomain.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
	if got.RemainingTenure != 0 || got.RemainingAmount != 0 {
		t.Fatalf("leftover after completion: tenure=%d amount=%v", got.RemainingTenure, got.RemainingAmount)
	}
	if got.TotalPaid != 106618.56 {
		t.Fatalf("total paid = %v, want 106618.56", got.TotalPaid)
	}

	// each payment nudged the credit score up by 1
	rec, err := f.kycs.GetByCustomerID(ctx, 101)
	if err != nil {
		t.Fatalf("kyc: %v", err)
	}
	if rec.CibilScore == nil || *rec.CibilScore != 742 {
		t.Fatalf("cibil after 12 payments = %v, want 742", rec.CibilScore)
	}

	acc, _ = f.accts.GetByCustomerID(ctx, 101)
	if math.Abs(acc.Balance-13381.44) > 0.01 {
		t.Fatalf("final balance = %v, want 13381.44", acc.Balance)
	}

	// a completed loan takes no more payments
	if _, err := f.uc.PayEMI(ctx, l.ID, 101); !errors.Is(err, loanDomain.ErrLoanNotActive) {
		t.Fatalf("pay after completion: want ErrLoanNotActive, got %v", err)
	}
}

func TestManagerDecision_EscalatesAboveLimit(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)
	ctx := context.Background()

	l, err := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(2_000_000, 60))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f.uc.AssignVerification(ctx, l.ID, 201); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.uc.VerificationDecision(ctx, l.ID, true); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := f.uc.ManagerDecision(ctx, l.ID, 301, true); err != nil {
		t.Fatalf("manager: %v", err)
	}

	got, _ := f.uc.Get(ctx, l.ID)
	if got.Status != loanDomain.StatusPendingAdminApproval {
		t.Fatalf("status = %s, want pending_admin_approval", got.Status)
	}
	if got.ApprovedAt != nil {
		t.Fatalf("escalated loan must not carry an approval timestamp yet")
	}

	if err := f.uc.AdminApprove(ctx, l.ID, 401); err != nil {
		t.Fatalf("admin approve: %v", err)
	}
	got, _ = f.uc.Get(ctx, l.ID)
	if got.Status != loanDomain.StatusAdminApproved {
		t.Fatalf("status = %s, want admin_approved", got.Status)
	}
	if got.AdminID == nil || *got.AdminID != 401 {
		t.Fatalf("admin id not stamped")
	}
	if got.ApprovedAt == nil {
		t.Fatalf("approval timestamp missing after admin approval")
	}
}

func TestAdminApprove_Guards(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)
	ctx := context.Background()

	// at or below the manager limit: admin approval is never required
	small, err := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(1_000_000, 24))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f.uc.AdminApprove(ctx, small.ID, 401); !errors.Is(err, loanDomain.ErrAdminApprovalNotRequired) {
		t.Fatalf("small loan: want ErrAdminApprovalNotRequired, got %v", err)
	}

	// above the limit but not escalated yet
	big, err := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(2_000_000, 60))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f.uc.AdminApprove(ctx, big.ID, 401); !errors.Is(err, loanDomain.ErrNotPendingAdminApproval) {
		t.Fatalf("not escalated: want ErrNotPendingAdminApproval, got %v", err)
	}
}

func TestManagerDecision_Reject(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)
	ctx := context.Background()

	l, _ := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))
	if err := f.uc.AssignVerification(ctx, l.ID, 201); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.uc.VerificationDecision(ctx, l.ID, true); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := f.uc.ManagerDecision(ctx, l.ID, 301, false); err != nil {
		t.Fatalf("reject: %v", err)
	}
	got, _ := f.uc.Get(ctx, l.ID)
	if got.Status != loanDomain.StatusRejected {
		t.Fatalf("status = %s, want rejected", got.Status)
	}
}

func TestDisburse_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)
	ctx := context.Background()

	l, _ := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))
	f.approveAndDisburse(t, l.ID)

	if err := f.uc.Disburse(ctx, l.ID); !errors.Is(err, loanDomain.ErrAlreadyDisbursed) {
		t.Fatalf("second disburse: want ErrAlreadyDisbursed, got %v", err)
	}
	// even the permissive engine refuses a double credit
	if err := f.ucPerm.Disburse(ctx, l.ID); !errors.Is(err, loanDomain.ErrAlreadyDisbursed) {
		t.Fatalf("permissive second disburse: want ErrAlreadyDisbursed, got %v", err)
	}

	// exactly one disbursement entry on the ledger
	txns, err := f.txns.ListByCustomer(ctx, 101, 100)
	if err != nil {
		t.Fatalf("txns: %v", err)
	}
	disb := 0
	for _, tx := range txns {
		if tx.Kind == txnDomain.KindDisbursement {
			disb++
		}
	}
	if disb != 1 {
		t.Fatalf("disbursement entries = %d, want 1", disb)
	}
}

func TestTransitionTable_BlocksSkips_PermissiveAllows(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)
	ctx := context.Background()

	l, _ := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))

	// skipping straight to sanction is off the table
	if err := f.uc.SendSanction(ctx, l.ID); !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	// the permissive engine reproduces the legacy free-for-all
	if err := f.ucPerm.SendSanction(ctx, l.ID); err != nil {
		t.Fatalf("permissive sanction: %v", err)
	}
	got, _ := f.uc.Get(ctx, l.ID)
	if got.Status != loanDomain.StatusSanctionSent {
		t.Fatalf("status = %s, want sanction_sent", got.Status)
	}
}

func TestPayEMI_InsufficientFundsRollsBack(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0) // empty account
	ctx := context.Background()

	l, _ := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))
	f.approveAndDisburse(t, l.ID)

	// drain the account below one installment
	if _, err := f.ledger.Debit(ctx, 101, 95000, txnDomain.KindDebit); err != nil {
		t.Fatalf("drain: %v", err)
	}

	_, err := f.uc.PayEMI(ctx, l.ID, 101)
	if !errors.Is(err, accountDomain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	// nothing moved
	got, _ := f.uc.Get(ctx, l.ID)
	if got.RemainingTenure != 12 || got.TotalPaid != 0 {
		t.Fatalf("failed payment mutated the loan: %+v", got)
	}
	acc, _ := f.accts.GetByCustomerID(ctx, 101)
	if math.Abs(acc.Balance-5000) > 0.01 {
		t.Fatalf("balance = %v, want 5000", acc.Balance)
	}
}

func TestPayEMI_OwnershipAndState(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 50000)
	ctx := context.Background()

	l, _ := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))

	// not yet active
	if _, err := f.uc.PayEMI(ctx, l.ID, 101); !errors.Is(err, loanDomain.ErrLoanNotActive) {
		t.Fatalf("inactive: want ErrLoanNotActive, got %v", err)
	}

	f.approveAndDisburse(t, l.ID)

	// someone else's loan reads as not found, never as a different error
	if _, err := f.uc.PayEMI(ctx, l.ID, 999); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("wrong owner: want ErrNotFound, got %v", err)
	}
	// unknown id
	if _, err := f.uc.PayEMIByID(ctx, 12345, 101); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("unknown id: want ErrNotFound, got %v", err)
	}
}

func TestListForManager_And_PendingAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, 101, 0)
	ctx := context.Background()

	a, _ := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(100000, 12))
	b, _ := f.uc.Apply(ctx, loanDomain.CategoryPersonal, 101, applyInput(2_000_000, 60))

	// escalate b
	if err := f.uc.AssignVerification(ctx, b.ID, 201); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.uc.VerificationDecision(ctx, b.ID, true); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := f.uc.ManagerDecision(ctx, b.ID, 301, true); err != nil {
		t.Fatalf("manager: %v", err)
	}

	mgr, err := f.uc.ListForManager(ctx)
	if err != nil {
		t.Fatalf("ListForManager: %v", err)
	}
	ids := map[int64]bool{}
	for _, l := range mgr {
		ids[l.ID] = true
	}
	if !ids[a.ID] || !ids[b.ID] {
		t.Fatalf("manager list missing loans: %v", ids)
	}

	pending, err := f.uc.ListPendingAdminApprovals(ctx)
	if err != nil {
		t.Fatalf("ListPendingAdminApprovals: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != b.ID {
		t.Fatalf("pending admin list = %+v, want just loan %d", pending, b.ID)
	}
}
