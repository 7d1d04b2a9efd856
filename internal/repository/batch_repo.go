package repository

import (
	"context"
	"errors"

	"dukaledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BatchRepository interface {
	CreateTx(tx *gorm.DB, b *model.Batch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	// ListAvailableByItem returns batches with remaining stock, oldest
	// acquisition first. This is the FIFO consumption order.
	ListAvailableByItem(ctx context.Context, itemID uuid.UUID) ([]model.Batch, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.Batch, error)
	// DepleteTx decrements available_qty by qty iff enough stock remains.
	// The guard runs inside the UPDATE itself, so a raced stale read surfaces
	// as ErrInsufficientStock instead of overwriting. Returns the batch as it
	// stands after the decrement.
	DepleteTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal) (*model.Batch, error)
	// AdjustTx applies a signed correction, rejected unless the result stays
	// within [0, initial_qty].
	AdjustTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) (*model.Batch, error)
	DB() *gorm.DB
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) DB() *gorm.DB { return r.db }

func (r *batchRepo) CreateTx(tx *gorm.DB, b *model.Batch) error {
	return tx.Create(b).Error
}

func (r *batchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	var b model.Batch
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &b, err
}

func (r *batchRepo) ListAvailableByItem(ctx context.Context, itemID uuid.UUID) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND available_qty > 0", itemID, model.BatchAvailable).
		Order("acquired_on ASC, created_at ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("acquired_on ASC, created_at ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) DepleteTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal) (*model.Batch, error) {
	res := tx.Model(&model.Batch{}).
		Where("id = ? AND available_qty >= ?", id, qty).
		Update("available_qty", gorm.Expr("available_qty - ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the batch does not exist or the guard rejected the decrement.
		var count int64
		if err := tx.Model(&model.Batch{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, model.ErrNotFound
		}
		return nil, model.ErrInsufficientStock
	}

	var b model.Batch
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if b.AvailableQty.IsZero() && b.Status != model.BatchSoldOut {
		b.Status = model.BatchSoldOut
		if err := tx.Model(&model.Batch{}).Where("id = ?", id).
			Update("status", model.BatchSoldOut).Error; err != nil {
			return nil, err
		}
	}
	return &b, nil
}

func (r *batchRepo) AdjustTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) (*model.Batch, error) {
	res := tx.Model(&model.Batch{}).
		Where("id = ? AND available_qty + ? >= 0 AND available_qty + ? <= initial_qty", id, delta, delta).
		Update("available_qty", gorm.Expr("available_qty + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.Batch{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, model.ErrNotFound
		}
		return nil, model.ErrInvalidAdjustment
	}

	var b model.Batch
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	// A positive correction can revive an exhausted batch; a negative one can
	// exhaust it.
	status := model.BatchAvailable
	if b.AvailableQty.IsZero() {
		status = model.BatchSoldOut
	}
	if b.Status != status {
		b.Status = status
		if err := tx.Model(&model.Batch{}).Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return nil, err
		}
	}
	return &b, nil
}
