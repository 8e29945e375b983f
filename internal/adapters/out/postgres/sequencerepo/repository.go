// Package sequencerepo keeps the per-day dispatch note counters in the
// ledger database, so a number is only consumed when its note commits.
package sequencerepo

import (
	"context"
	"strings"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// DispatchSequenceDTO maps dispatch_sequences: one row per day window.
type DispatchSequenceDTO struct {
	Window string `gorm:"column:day_window;type:varchar(16);primaryKey"`
	Value  int64  `gorm:"type:bigint;not null"`
}

func (DispatchSequenceDTO) TableName() string {
	return "dispatch_sequences"
}

const nextValueSQL = `
INSERT INTO dispatch_sequences (day_window, value)
VALUES (?, 1)
ON CONFLICT (day_window) DO UPDATE SET value = dispatch_sequences.value + 1
RETURNING value`

type GormDispatchSequence struct {
	db *gorm.DB
}

func NewGormDispatchSequence(db *gorm.DB) *GormDispatchSequence {
	return &GormDispatchSequence{db: db}
}

// Next increments the window's counter. The upsert takes a row lock, so
// concurrent dispatches on the same day are serialized until commit.
func (s *GormDispatchSequence) Next(ctx context.Context, window string) (int64, error) {
	if strings.TrimSpace(window) == "" {
		return 0, errs.NewValueIsRequiredError("window")
	}

	var value int64
	if err := s.db.WithContext(ctx).Raw(nextValueSQL, window).Scan(&value).Error; err != nil {
		return 0, err
	}
	return value, nil
}

// PruneBefore deletes counters of days strictly before window. Windows are
// YYYYMMDD, so string order is calendar order.
func (s *GormDispatchSequence) PruneBefore(ctx context.Context, window string) (int64, error) {
	if strings.TrimSpace(window) == "" {
		return 0, errs.NewValueIsRequiredError("window")
	}

	result := s.db.WithContext(ctx).
		Where("day_window < ?", window).
		Delete(&DispatchSequenceDTO{})
	return result.RowsAffected, result.Error
}
