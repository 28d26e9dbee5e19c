package maintenance

import (
	"context"
	"errors"
	"log"
	"time"

	kycDomain "paycrest-backend/internal/domain/kyc"
	loanDomain "paycrest-backend/internal/domain/loan"
	"paycrest-backend/internal/domain/uow"
	"paycrest-backend/internal/usecase/creditscore"
)

// Usecase is the batch job that penalizes overdue EMIs.
type Usecase struct {
	loanRepo loanDomain.Repository
	uow      uow.UnitOfWork
	credit   *creditscore.Usecase
}

func NewUsecase(repo loanDomain.Repository, u uow.UnitOfWork, cs *creditscore.Usecase) *Usecase {
	return &Usecase{loanRepo: repo, uow: u, credit: cs}
}

type ScanResult struct {
	Penalized int `json:"penalized"`
}

// RunPenaltyScan walks active loans whose EMI due date has passed, applies
// the -5 credit penalty and pushes the due date to now so the same scan does
// not re-penalize. Each loan is handled in its own transaction under the row
// lock, so a concurrent EMI payment either lands before the penalty or after
// it, never interleaved.
func (u *Usecase) RunPenaltyScan(ctx context.Context) (*ScanResult, error) {
	scanStart := time.Now().UTC()
	overdue, err := u.loanRepo.ListOverdueActive(ctx, scanStart)
	if err != nil {
		return nil, err
	}

	res := &ScanResult{}
	for _, candidate := range overdue {
		err := u.uow.WithinLoanTx(ctx, candidate.ID, func(r uow.Repos, l *loanDomain.Loan) error {
			// re-check under the lock: a payment may have raced the scan
			if l.Status != loanDomain.StatusActive || !l.NextEMIDue.Before(scanStart) {
				return nil
			}
			if _, err := u.credit.PenalizeMissedEMIIn(ctx, r, l.CustomerID); err != nil && !errors.Is(err, kycDomain.ErrNotFound) {
				return err
			}
			l.NextEMIDue = time.Now().UTC()
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			res.Penalized++
			return nil
		})
		if err != nil {
			// keep scanning; one bad loan must not wedge the batch
			log.Printf("penalty scan: loan %d: %v", candidate.ID, err)
		}
	}
	return res, nil
}
