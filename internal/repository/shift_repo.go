package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dukaledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shift total fields addressable by AddToTotal.
const (
	ShiftFieldSales    = "total_sales"
	ShiftFieldExpenses = "total_expenses"
	ShiftFieldVouchers = "total_vouchers"
)

type ShiftRepository interface {
	Create(ctx context.Context, s *model.Shift) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	FindOpenByDateType(ctx context.Context, date time.Time, shiftType string) (*model.Shift, error)
	// AddToTotal increments one of the running totals iff the shift is still
	// open. Returns the number of rows touched — zero means closed or missing.
	AddToTotal(ctx context.Context, id uuid.UUID, field string, amount decimal.Decimal) (int64, error)
	// Close writes closing cash and every computed field in one conditional
	// UPDATE guarded on status = 'open' and on the totals the computation
	// read. Zero rows means the open→closed transition already happened or a
	// posting landed after the read — the caller re-reads and retries.
	Close(ctx context.Context, s *model.Shift) (int64, error)
	List(ctx context.Context, from, to time.Time, page, limit int) ([]model.Shift, int64, error)
}

type shiftRepo struct{ db *gorm.DB }

func NewShiftRepository(db *gorm.DB) ShiftRepository { return &shiftRepo{db: db} }

func (r *shiftRepo) Create(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &s, err
}

func (r *shiftRepo) FindOpenByDateType(ctx context.Context, date time.Time, shiftType string) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).
		Where("shift_date = ? AND shift_type = ? AND status = ?", date, shiftType, model.ShiftOpen).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &s, err
}

func (r *shiftRepo) AddToTotal(ctx context.Context, id uuid.UUID, field string, amount decimal.Decimal) (int64, error) {
	switch field {
	case ShiftFieldSales, ShiftFieldExpenses, ShiftFieldVouchers:
	default:
		return 0, fmt.Errorf("shift repo: unknown total field %q", field)
	}
	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ? AND status = ?", id, model.ShiftOpen).
		Update(field, gorm.Expr(field+" + ?", amount))
	return res.RowsAffected, res.Error
}

func (r *shiftRepo) Close(ctx context.Context, s *model.Shift) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ? AND status = ? AND total_sales = ? AND total_expenses = ? AND total_vouchers = ?",
			s.ID, model.ShiftOpen, s.TotalSales, s.TotalExpenses, s.TotalVouchers).
		Updates(map[string]interface{}{
			"closing_cash":  s.ClosingCash,
			"net_sales":     s.NetSales,
			"expected_cash": s.ExpectedCash,
			"variance":      s.Variance,
			"result":        s.Result,
			"closed_by":     s.ClosedBy,
			"closed_at":     s.ClosedAt,
			"status":        model.ShiftClosed,
		})
	return res.RowsAffected, res.Error
}

func (r *shiftRepo) List(ctx context.Context, from, to time.Time, page, limit int) ([]model.Shift, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("shift_date >= ? AND shift_date <= ?", from, to)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	var shifts []model.Shift
	err := q.Order("shift_date DESC, opened_at DESC").Offset(offset).Limit(limit).Find(&shifts).Error
	return shifts, total, err
}
