package service

import (
	"context"
	"sort"
	"time"

	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory BatchRepository ────────────────────────────────────────────────

type fakeBatchRepo struct {
	batches map[uuid.UUID]*model.Batch
	order   []uuid.UUID // insertion order, tiebreak within one acquired_on
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[uuid.UUID]*model.Batch)}
}

func (r *fakeBatchRepo) DB() *gorm.DB { return nil }

func (r *fakeBatchRepo) CreateTx(_ *gorm.DB, b *model.Batch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	cp := *b
	r.batches[b.ID] = &cp
	r.order = append(r.order, b.ID)
	return nil
}

func (r *fakeBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) ListAvailableByItem(_ context.Context, itemID uuid.UUID) ([]model.Batch, error) {
	pos := make(map[uuid.UUID]int, len(r.order))
	for i, id := range r.order {
		pos[id] = i
	}
	var out []model.Batch
	for _, id := range r.order {
		b := r.batches[id]
		if b.ItemID == itemID && b.Status == model.BatchAvailable && b.AvailableQty.IsPositive() {
			out = append(out, *b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].AcquiredOn.Equal(out[j].AcquiredOn) {
			return out[i].AcquiredOn.Before(out[j].AcquiredOn)
		}
		return pos[out[i].ID] < pos[out[j].ID]
	})
	return out, nil
}

func (r *fakeBatchRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]model.Batch, error) {
	var out []model.Batch
	for _, id := range r.order {
		if b := r.batches[id]; b.ItemID == itemID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) DepleteTx(_ *gorm.DB, id uuid.UUID, qty decimal.Decimal) (*model.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if b.AvailableQty.LessThan(qty) {
		return nil, model.ErrInsufficientStock
	}
	b.AvailableQty = b.AvailableQty.Sub(qty)
	if b.AvailableQty.IsZero() {
		b.Status = model.BatchSoldOut
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) AdjustTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) (*model.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	next := b.AvailableQty.Add(delta)
	if next.IsNegative() || next.GreaterThan(b.InitialQty) {
		return nil, model.ErrInvalidAdjustment
	}
	b.AvailableQty = next
	if next.IsZero() {
		b.Status = model.BatchSoldOut
	} else {
		b.Status = model.BatchAvailable
	}
	cp := *b
	return &cp, nil
}

var _ repository.BatchRepository = (*fakeBatchRepo)(nil)

// ── In-memory MovementRepository ─────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []model.Movement
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) add(m *model.Movement) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
}

func (r *fakeMovementRepo) Create(_ context.Context, m *model.Movement) error {
	r.add(m)
	return nil
}

func (r *fakeMovementRepo) CreateTx(_ *gorm.DB, m *model.Movement) error {
	r.add(m)
	return nil
}

func (r *fakeMovementRepo) SumBefore(_ context.Context, itemID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.movements {
		if m.ItemID == itemID && m.Date.Before(date) {
			total = total.Add(m.Qty)
		}
	}
	return total, nil
}

func (r *fakeMovementRepo) SumOn(_ context.Context, itemID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.movements {
		if m.ItemID == itemID && m.Date.Equal(date) {
			total = total.Add(m.Qty)
		}
	}
	return total, nil
}

func (r *fakeMovementRepo) ListRange(_ context.Context, itemID uuid.UUID, from, to time.Time) ([]model.Movement, error) {
	var out []model.Movement
	for _, m := range r.movements {
		if m.ItemID == itemID && !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]model.Movement, int64, error) {
	var all []model.Movement
	for _, m := range r.movements {
		if filter.ItemID != nil && m.ItemID != *filter.ItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		all = append(all, m)
	}
	total := int64(len(all))
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

// ── In-memory ItemRepository ─────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[uuid.UUID]*model.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) List(_ context.Context, activeOnly bool) ([]model.Item, error) {
	var out []model.Item
	for _, item := range r.items {
		if activeOnly && !item.Active {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

// ── In-memory LossRepository ─────────────────────────────────────────────────

type fakeLossRepo struct {
	records []model.LossRecord
}

func newFakeLossRepo() *fakeLossRepo { return &fakeLossRepo{} }

func (r *fakeLossRepo) CreateTx(_ *gorm.DB, l *model.LossRecord) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = time.Now()
	r.records = append(r.records, *l)
	return nil
}

func (r *fakeLossRepo) ListRange(_ context.Context, from, to time.Time) ([]model.LossRecord, error) {
	var out []model.LossRecord
	for _, l := range r.records {
		if !l.CreatedAt.Before(from) && l.CreatedAt.Before(to.AddDate(0, 0, 1)) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLossRepo) CategoryTotals(_ context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal)
	for _, l := range r.records {
		if !l.CreatedAt.Before(from) && l.CreatedAt.Before(to.AddDate(0, 0, 1)) {
			totals[l.Category] = totals[l.Category].Add(l.Qty)
		}
	}
	return totals, nil
}

var _ repository.LossRepository = (*fakeLossRepo)(nil)

// ── In-memory ShiftRepository ────────────────────────────────────────────────

type fakeShiftRepo struct {
	shifts map[uuid.UUID]*model.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[uuid.UUID]*model.Shift)}
}

func (r *fakeShiftRepo) Create(_ context.Context, s *model.Shift) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.shifts[s.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeShiftRepo) FindOpenByDateType(_ context.Context, date time.Time, shiftType string) (*model.Shift, error) {
	for _, s := range r.shifts {
		if s.ShiftDate.Equal(date) && s.ShiftType == shiftType && s.Status == model.ShiftOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *fakeShiftRepo) AddToTotal(_ context.Context, id uuid.UUID, field string, amount decimal.Decimal) (int64, error) {
	s, ok := r.shifts[id]
	if !ok || s.Status != model.ShiftOpen {
		return 0, nil
	}
	switch field {
	case repository.ShiftFieldSales:
		s.TotalSales = s.TotalSales.Add(amount)
	case repository.ShiftFieldExpenses:
		s.TotalExpenses = s.TotalExpenses.Add(amount)
	case repository.ShiftFieldVouchers:
		s.TotalVouchers = s.TotalVouchers.Add(amount)
	}
	return 1, nil
}

func (r *fakeShiftRepo) Close(_ context.Context, s *model.Shift) (int64, error) {
	stored, ok := r.shifts[s.ID]
	if !ok || stored.Status != model.ShiftOpen {
		return 0, nil
	}
	// Same totals guard as the SQL UPDATE: a posting that landed after the
	// caller's read makes the close miss.
	if !stored.TotalSales.Equal(s.TotalSales) ||
		!stored.TotalExpenses.Equal(s.TotalExpenses) ||
		!stored.TotalVouchers.Equal(s.TotalVouchers) {
		return 0, nil
	}
	cp := *s
	r.shifts[s.ID] = &cp
	return 1, nil
}

func (r *fakeShiftRepo) List(_ context.Context, from, to time.Time, page, limit int) ([]model.Shift, int64, error) {
	var all []model.Shift
	for _, s := range r.shifts {
		if !s.ShiftDate.Before(from) && !s.ShiftDate.After(to) {
			all = append(all, *s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ShiftDate.Before(all[j].ShiftDate) })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

var _ repository.ShiftRepository = (*fakeShiftRepo)(nil)
