package mysql

import (
	"context"
	"errors"

	"paycrest-backend/internal/domain/sequence"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter is one named sequence row. Increments happen under a row lock so
// no two callers ever observe the same value.
type Counter struct {
	Name  string `gorm:"primaryKey;size:64;column:name"`
	Value int64  `gorm:"column:value"`
}

func (Counter) TableName() string { return "sequences" }

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var val int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row Counter
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&row)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			row = Counter{Name: name, Value: sequence.Base(name)}
			if err := tx.Create(&row).Error; err != nil {
				// lost the creation race; lock the winner's row instead
				res = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("name = ?", name).
					First(&row)
				if res.Error != nil {
					return res.Error
				}
			}
		} else if res.Error != nil {
			return res.Error
		}
		row.Value++
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		val = row.Value
		return nil
	})
	return val, err
}
