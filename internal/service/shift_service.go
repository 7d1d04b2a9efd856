package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"
	"dukaledger/internal/worker"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	closeLockTTL     = 10 * time.Second
	closeMaxAttempts = 3
)

// CloseLocker serializes concurrent Close calls on one shift. The redis
// implementation is the production one; tests fake contention through this
// interface.
type CloseLocker interface {
	// Obtain returns a release func, or redislock.ErrNotObtained when another
	// holder owns the key.
	Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

type redisCloseLocker struct{ client *redislock.Client }

// NewCloseLocker wraps a redislock client as a CloseLocker.
func NewCloseLocker(client *redislock.Client) CloseLocker {
	return &redisCloseLocker{client: client}
}

func (l *redisCloseLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		return nil, err
	}
	return lock.Release, nil
}

// ShiftService is the cash reconciliation state machine: open → closed,
// terminal. While open, sale/expense/voucher totals accumulate through atomic
// increments; closing computes expected cash and variance exactly once.
type ShiftService interface {
	Open(ctx context.Context, req dto.OpenShiftRequest, openedBy uuid.UUID) (*dto.ShiftResponse, error)
	RecordSale(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) error
	RecordExpense(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) error
	RecordVoucher(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) error
	Close(ctx context.Context, shiftID uuid.UUID, closingCash decimal.Decimal, closedBy uuid.UUID) (*dto.ShiftResponse, error)
	Get(ctx context.Context, shiftID uuid.UUID) (*dto.ShiftResponse, error)
	List(ctx context.Context, from, to time.Time, page, limit int) (*dto.ShiftListResponse, error)
}

type shiftService struct {
	repo       repository.ShiftRepository
	locker     CloseLocker
	dispatcher *worker.Dispatcher
}

// NewShiftService wires the repository plus two optional collaborators:
// locker guards concurrent closes (nil skips the guard — unit test mode) and
// dispatcher fires the best-effort shift report job after a close.
func NewShiftService(repo repository.ShiftRepository, locker CloseLocker, dispatcher *worker.Dispatcher) ShiftService {
	return &shiftService{repo: repo, locker: locker, dispatcher: dispatcher}
}

func (s *shiftService) Open(ctx context.Context, req dto.OpenShiftRequest, openedBy uuid.UUID) (*dto.ShiftResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.OpeningCash.IsNegative() {
		return nil, fmt.Errorf("opening cash %s: %w", req.OpeningCash, model.ErrInvalidQuantity)
	}

	// One open shift per (date, type) — the till has one drawer. Only a
	// definite "no open shift" lets the create proceed; a lookup failure must
	// not open a second drawer.
	existing, err := s.repo.FindOpenByDateType(ctx, date, req.Type)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("open shift lookup: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a %s shift for %s is already open", req.Type, req.Date)
	}

	shift := &model.Shift{
		ShiftDate:     date,
		ShiftType:     req.Type,
		OpenedBy:      openedBy,
		OpeningCash:   req.OpeningCash,
		TotalSales:    decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalVouchers: decimal.Zero,
		Status:        model.ShiftOpen,
		OpenedAt:      nowFn(),
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) RecordSale(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) error {
	return s.addToTotal(ctx, shiftID, repository.ShiftFieldSales, amount)
}

func (s *shiftService) RecordExpense(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) error {
	return s.addToTotal(ctx, shiftID, repository.ShiftFieldExpenses, amount)
}

func (s *shiftService) RecordVoucher(ctx context.Context, shiftID uuid.UUID, amount decimal.Decimal) error {
	return s.addToTotal(ctx, shiftID, repository.ShiftFieldVouchers, amount)
}

func (s *shiftService) addToTotal(ctx context.Context, shiftID uuid.UUID, field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount %s: %w", amount, model.ErrInvalidQuantity)
	}
	rows, err := s.repo.AddToTotal(ctx, shiftID, field, amount)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Closed shift or unknown id — decide which for the caller.
		if _, err := s.repo.FindByID(ctx, shiftID); err != nil {
			return err
		}
		return fmt.Errorf("shift %s: %w", shiftID, model.ErrShiftClosed)
	}
	return nil
}

// Close reconciles the drawer:
//
//	net_sales     = sales − expenses − vouchers
//	expected_cash = opening + sales − expenses
//	variance      = counted − expected
//
// Vouchers are already netted out of recorded sales upstream, so they do not
// reduce expected cash a second time.
func (s *shiftService) Close(ctx context.Context, shiftID uuid.UUID, closingCash decimal.Decimal, closedBy uuid.UUID) (*dto.ShiftResponse, error) {
	if closingCash.IsNegative() {
		return nil, fmt.Errorf("closing cash %s: %w", closingCash, model.ErrInvalidQuantity)
	}

	if s.locker != nil {
		release, err := s.locker.Obtain(ctx, "shift:close:"+shiftID.String(), closeLockTTL)
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("shift %s: %w", shiftID, model.ErrAlreadyClosing)
		}
		if err != nil {
			return nil, err
		}
		defer func() { _ = release(ctx) }()
	}

	// Read totals, compute, then commit with a conditional UPDATE that also
	// matches the totals the computation used. A posting that lands between
	// the read and the UPDATE makes the write miss, and we recompute from the
	// fresh totals.
	for attempt := 0; attempt < closeMaxAttempts; attempt++ {
		shift, err := s.repo.FindByID(ctx, shiftID)
		if err != nil {
			return nil, err
		}
		if shift.Status != model.ShiftOpen {
			return nil, fmt.Errorf("shift %s: %w", shiftID, model.ErrShiftNotOpen)
		}

		netSales := shift.TotalSales.Sub(shift.TotalExpenses).Sub(shift.TotalVouchers)
		expected := shift.OpeningCash.Add(shift.TotalSales).Sub(shift.TotalExpenses)
		variance := closingCash.Sub(expected)
		result := classifyVariance(variance)
		closedAt := nowFn()

		shift.ClosingCash = &closingCash
		shift.NetSales = &netSales
		shift.ExpectedCash = &expected
		shift.Variance = &variance
		shift.Result = &result
		shift.ClosedBy = &closedBy
		shift.ClosedAt = &closedAt
		shift.Status = model.ShiftClosed

		rows, err := s.repo.Close(ctx, shift)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			continue
		}

		// Best-effort: end-of-shift report PDF + email, fire and forget.
		if s.dispatcher != nil {
			_ = s.dispatcher.EnqueueShiftReport(ctx, worker.ShiftReportPayload{ShiftID: shiftID.String()})
		}
		return shiftToResponse(shift), nil
	}
	return nil, fmt.Errorf("shift %s: close kept losing to concurrent postings", shiftID)
}

func (s *shiftService) Get(ctx context.Context, shiftID uuid.UUID) (*dto.ShiftResponse, error) {
	shift, err := s.repo.FindByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) List(ctx context.Context, from, to time.Time, page, limit int) (*dto.ShiftListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	shifts, total, err := s.repo.List(ctx, dayOf(from), dayOf(to), page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		items = append(items, *shiftToResponse(&shifts[i]))
	}
	return &dto.ShiftListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

// classifyVariance: zero → balanced, positive → overage, negative → shortage.
func classifyVariance(v decimal.Decimal) string {
	switch {
	case v.IsZero():
		return model.ShiftBalanced
	case v.IsPositive():
		return model.ShiftOverage
	default:
		return model.ShiftShortage
	}
}

func shiftToResponse(s *model.Shift) *dto.ShiftResponse {
	resp := &dto.ShiftResponse{
		ID:            s.ID.String(),
		Date:          dayOf(s.ShiftDate).Format(dateLayout),
		Type:          s.ShiftType,
		OpenedBy:      s.OpenedBy.String(),
		OpeningCash:   s.OpeningCash,
		TotalSales:    s.TotalSales,
		TotalExpenses: s.TotalExpenses,
		TotalVouchers: s.TotalVouchers,
		ClosingCash:   s.ClosingCash,
		NetSales:      s.NetSales,
		ExpectedCash:  s.ExpectedCash,
		Variance:      s.Variance,
		Result:        s.Result,
		Status:        s.Status,
		OpenedAt:      s.OpenedAt.Format("2006-01-02T15:04:05Z"),
	}
	if s.ClosedBy != nil {
		id := s.ClosedBy.String()
		resp.ClosedBy = &id
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format("2006-01-02T15:04:05Z")
		resp.ClosedAt = &t
	}
	return resp
}
