package mysql

import (
	"context"

	kycDomain "paycrest-backend/internal/domain/kyc"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KYCRepository struct{ db *gorm.DB }

func NewKYCRepository(db *gorm.DB) *KYCRepository { return &KYCRepository{db: db} }

func (r *KYCRepository) Create(ctx context.Context, rec *kycDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *KYCRepository) Save(ctx context.Context, rec *kycDomain.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *KYCRepository) GetByCustomerID(ctx context.Context, customerID int64) (*kycDomain.Record, error) {
	var out kycDomain.Record
	res := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&out)
	return &out, res.Error
}

func (r *KYCRepository) GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*kycDomain.Record, error) {
	var out kycDomain.Record
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&out)
	return &out, res.Error
}

func (r *KYCRepository) ListByStatus(ctx context.Context, status kycDomain.Status, limit int) ([]kycDomain.Record, error) {
	var out []kycDomain.Record
	q := r.db.WithContext(ctx).
		Where("kyc_status = ?", status).
		Order("submitted_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	res := q.Find(&out)
	return out, res.Error
}
