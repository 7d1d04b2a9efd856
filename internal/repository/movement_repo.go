package repository

import (
	"context"
	"time"

	"dukaledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementFilter defines filters for the paginated movement listing.
type MovementFilter struct {
	ItemID *uuid.UUID
	Type   string
	Page   int
	Limit  int
}

type MovementRepository interface {
	Create(ctx context.Context, m *model.Movement) error
	CreateTx(tx *gorm.DB, m *model.Movement) error
	// SumBefore returns the signed quantity total strictly before date —
	// by the chain invariant this IS the opening balance for that date.
	SumBefore(ctx context.Context, itemID uuid.UUID, date time.Time) (decimal.Decimal, error)
	// SumOn returns the signed quantity total for exactly that date.
	SumOn(ctx context.Context, itemID uuid.UUID, date time.Time) (decimal.Decimal, error)
	// ListRange returns entries with from <= date <= to, ordered by date then
	// insertion order.
	ListRange(ctx context.Context, itemID uuid.UUID, from, to time.Time) ([]model.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]model.Movement, int64, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository { return &movementRepo{db: db} }

func (r *movementRepo) Create(ctx context.Context, m *model.Movement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.Movement) error {
	return tx.Create(m).Error
}

type sumRow struct {
	Total decimal.Decimal
}

func (r *movementRepo) SumBefore(ctx context.Context, itemID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).Model(&model.Movement{}).
		Select("COALESCE(SUM(qty), 0) AS total").
		Where("item_id = ? AND date < ?", itemID, date).
		Scan(&row).Error
	return row.Total, err
}

func (r *movementRepo) SumOn(ctx context.Context, itemID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).Model(&model.Movement{}).
		Select("COALESCE(SUM(qty), 0) AS total").
		Where("item_id = ? AND date = ?", itemID, date).
		Scan(&row).Error
	return row.Total, err
}

func (r *movementRepo) ListRange(ctx context.Context, itemID uuid.UUID, from, to time.Time) ([]model.Movement, error) {
	var movs []model.Movement
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND date >= ? AND date <= ?", itemID, from, to).
		Order("date ASC, created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *movementRepo) List(ctx context.Context, filter MovementFilter) ([]model.Movement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movement{}).Preload("Item")
	if filter.ItemID != nil {
		q = q.Where("item_id = ?", *filter.ItemID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movs []model.Movement
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movs).Error
	return movs, total, err
}
