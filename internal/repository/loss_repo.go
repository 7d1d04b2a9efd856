package repository

import (
	"context"
	"time"

	"dukaledger/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LossRepository interface {
	CreateTx(tx *gorm.DB, l *model.LossRecord) error
	ListRange(ctx context.Context, from, to time.Time) ([]model.LossRecord, error)
	// CategoryTotals groups loss quantities by category over [from, to].
	CategoryTotals(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error)
}

type lossRepo struct{ db *gorm.DB }

func NewLossRepository(db *gorm.DB) LossRepository { return &lossRepo{db: db} }

func (r *lossRepo) CreateTx(tx *gorm.DB, l *model.LossRecord) error {
	return tx.Create(l).Error
}

func (r *lossRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.LossRecord, error) {
	var losses []model.LossRecord
	err := r.db.WithContext(ctx).Preload("Batch").
		Where("created_at >= ? AND created_at < ?", from, to.AddDate(0, 0, 1)).
		Order("created_at ASC").
		Find(&losses).Error
	return losses, err
}

func (r *lossRepo) CategoryTotals(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	type row struct {
		Category string
		Total    decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.LossRecord{}).
		Select("category, COALESCE(SUM(qty), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to.AddDate(0, 0, 1)).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		totals[r.Category] = r.Total
	}
	return totals, nil
}
