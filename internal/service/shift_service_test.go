package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShiftFixture(t *testing.T) (*fakeShiftRepo, ShiftService) {
	t.Helper()
	repo := newFakeShiftRepo()
	// nil locker and dispatcher: close guard and report job are skipped
	return repo, NewShiftService(repo, nil, nil)
}

func openShift(t *testing.T, svc ShiftService, date, typ, openingCash string) uuid.UUID {
	t.Helper()
	resp, err := svc.Open(context.Background(), dto.OpenShiftRequest{
		Date:        date,
		Type:        typ,
		OpeningCash: decimal.RequireFromString(openingCash),
	}, uuid.New())
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func TestOpenShift(t *testing.T) {
	_, svc := newShiftFixture(t)

	resp, err := svc.Open(context.Background(), dto.OpenShiftRequest{
		Date:        "2026-03-01",
		Type:        "morning",
		OpeningCash: decimal.NewFromInt(5000),
	}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.ShiftOpen, resp.Status)
	assert.Equal(t, "morning", resp.Type)
	assert.Equal(t, "5000", resp.OpeningCash.String())
	assert.Nil(t, resp.Variance)
}

func TestOpenDuplicateShiftRejected(t *testing.T) {
	_, svc := newShiftFixture(t)
	openShift(t, svc, "2026-03-01", "morning", "5000")

	_, err := svc.Open(context.Background(), dto.OpenShiftRequest{
		Date:        "2026-03-01",
		Type:        "morning",
		OpeningCash: decimal.NewFromInt(2000),
	}, uuid.New())
	assert.ErrorContains(t, err, "already open")

	// Same date, other drawer is fine
	_, err = svc.Open(context.Background(), dto.OpenShiftRequest{
		Date:        "2026-03-01",
		Type:        "evening",
		OpeningCash: decimal.NewFromInt(2000),
	}, uuid.New())
	assert.NoError(t, err)
}

func TestCloseComputesVarianceShortage(t *testing.T) {
	_, svc := newShiftFixture(t)
	id := openShift(t, svc, "2026-03-01", "morning", "5000")
	ctx := context.Background()

	require.NoError(t, svc.RecordSale(ctx, id, decimal.NewFromInt(40000)))
	require.NoError(t, svc.RecordSale(ctx, id, decimal.NewFromInt(2300)))
	require.NoError(t, svc.RecordExpense(ctx, id, decimal.NewFromInt(3100)))

	resp, err := svc.Close(ctx, id, decimal.NewFromInt(44000), uuid.New())
	require.NoError(t, err)

	// expected = 5000 + 42300 − 3100 = 44200; counted 44000 → short by 200
	require.NotNil(t, resp.ExpectedCash)
	assert.Equal(t, "44200", resp.ExpectedCash.String())
	require.NotNil(t, resp.Variance)
	assert.Equal(t, "-200", resp.Variance.String())
	require.NotNil(t, resp.Result)
	assert.Equal(t, model.ShiftShortage, *resp.Result)
	assert.Equal(t, model.ShiftClosed, resp.Status)
}

func TestCloseBalancedAndOverage(t *testing.T) {
	_, svc := newShiftFixture(t)
	ctx := context.Background()

	id := openShift(t, svc, "2026-03-01", "morning", "1000")
	require.NoError(t, svc.RecordSale(ctx, id, decimal.NewFromInt(500)))
	resp, err := svc.Close(ctx, id, decimal.NewFromInt(1500), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.ShiftBalanced, *resp.Result)
	assert.True(t, resp.Variance.IsZero())

	id = openShift(t, svc, "2026-03-01", "evening", "1000")
	resp, err = svc.Close(ctx, id, decimal.NewFromInt(1050), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.ShiftOverage, *resp.Result)
	assert.Equal(t, "50", resp.Variance.String())
}

func TestVouchersCountTowardNetSalesNotExpectedCash(t *testing.T) {
	_, svc := newShiftFixture(t)
	ctx := context.Background()
	id := openShift(t, svc, "2026-03-01", "morning", "1000")

	require.NoError(t, svc.RecordSale(ctx, id, decimal.NewFromInt(2000)))
	require.NoError(t, svc.RecordVoucher(ctx, id, decimal.NewFromInt(300)))

	resp, err := svc.Close(ctx, id, decimal.NewFromInt(3000), uuid.New())
	require.NoError(t, err)
	// net_sales nets the voucher out; expected cash does not
	assert.Equal(t, "1700", resp.NetSales.String())
	assert.Equal(t, "3000", resp.ExpectedCash.String())
	assert.Equal(t, model.ShiftBalanced, *resp.Result)
}

func TestRecordOnClosedShiftFails(t *testing.T) {
	_, svc := newShiftFixture(t)
	ctx := context.Background()
	id := openShift(t, svc, "2026-03-01", "morning", "1000")
	_, err := svc.Close(ctx, id, decimal.NewFromInt(1000), uuid.New())
	require.NoError(t, err)

	err = svc.RecordSale(ctx, id, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, model.ErrShiftClosed)
	err = svc.RecordExpense(ctx, id, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, model.ErrShiftClosed)
	err = svc.RecordVoucher(ctx, id, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, model.ErrShiftClosed)
}

func TestCloseTwiceFails(t *testing.T) {
	repo, svc := newShiftFixture(t)
	ctx := context.Background()
	id := openShift(t, svc, "2026-03-01", "morning", "1000")

	first, err := svc.Close(ctx, id, decimal.NewFromInt(1000), uuid.New())
	require.NoError(t, err)

	_, err = svc.Close(ctx, id, decimal.NewFromInt(9999), uuid.New())
	assert.ErrorIs(t, err, model.ErrShiftNotOpen)

	// Stored shift keeps the first close's figures
	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.ClosingCash.String(), stored.ClosingCash.String())
}

func TestRecordRejectsNonPositiveAmount(t *testing.T) {
	_, svc := newShiftFixture(t)
	ctx := context.Background()
	id := openShift(t, svc, "2026-03-01", "morning", "1000")

	err := svc.RecordSale(ctx, id, decimal.Zero)
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
	err = svc.RecordSale(ctx, id, decimal.NewFromInt(-50))
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
}

func TestRecordOnUnknownShift(t *testing.T) {
	_, svc := newShiftFixture(t)

	err := svc.RecordSale(context.Background(), uuid.New(), decimal.NewFromInt(100))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListShiftsByRange(t *testing.T) {
	_, svc := newShiftFixture(t)
	openShift(t, svc, "2026-03-01", "morning", "1000")
	openShift(t, svc, "2026-03-02", "morning", "1000")
	openShift(t, svc, "2026-03-10", "morning", "1000")

	resp, err := svc.List(context.Background(), mustDay(t, "2026-03-01"), mustDay(t, "2026-03-05"), 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	assert.Len(t, resp.Data, 2)
}

// flakyShiftRepo fails the open-slot lookup with a storage error.
type flakyShiftRepo struct {
	*fakeShiftRepo
	lookupErr error
}

func (r *flakyShiftRepo) FindOpenByDateType(ctx context.Context, date time.Time, shiftType string) (*model.Shift, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.fakeShiftRepo.FindOpenByDateType(ctx, date, shiftType)
}

func TestOpenFailsWhenSlotLookupErrors(t *testing.T) {
	repo := &flakyShiftRepo{
		fakeShiftRepo: newFakeShiftRepo(),
		lookupErr:     errors.New("connection reset by peer"),
	}
	svc := NewShiftService(repo, nil, nil)

	_, err := svc.Open(context.Background(), dto.OpenShiftRequest{
		Date:        "2026-03-01",
		Type:        "morning",
		OpeningCash: decimal.NewFromInt(5000),
	}, uuid.New())
	require.ErrorContains(t, err, "connection reset by peer")

	// Nothing was created: a second Open after the store recovers succeeds,
	// and there is still exactly one open morning shift.
	repo.lookupErr = nil
	openShift(t, svc, "2026-03-01", "morning", "5000")
	assert.Len(t, repo.shifts, 1)
}

// stubLocker fakes the close guard.
type stubLocker struct {
	err      error
	released bool
}

func (l *stubLocker) Obtain(_ context.Context, _ string, _ time.Duration) (func(context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	return func(context.Context) error {
		l.released = true
		return nil
	}, nil
}

func TestCloseContendedReturnsAlreadyClosing(t *testing.T) {
	repo := newFakeShiftRepo()
	locker := &stubLocker{err: redislock.ErrNotObtained}
	svc := NewShiftService(repo, locker, nil)
	id := openShift(t, svc, "2026-03-01", "morning", "1000")

	_, err := svc.Close(context.Background(), id, decimal.NewFromInt(1000), uuid.New())
	assert.ErrorIs(t, err, model.ErrAlreadyClosing)

	// Shift untouched — the later uncontended close still works.
	locker.err = nil
	resp, err := svc.Close(context.Background(), id, decimal.NewFromInt(1000), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.ShiftClosed, resp.Status)
	assert.True(t, locker.released)
}

// racingShiftRepo injects a sale between Close's read and its conditional
// UPDATE, once.
type racingShiftRepo struct {
	*fakeShiftRepo
	lateSale decimal.Decimal
	injected bool
}

func (r *racingShiftRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	s, err := r.fakeShiftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.injected && s.Status == model.ShiftOpen {
		r.injected = true
		stale := *s
		if _, err := r.fakeShiftRepo.AddToTotal(ctx, id, repository.ShiftFieldSales, r.lateSale); err != nil {
			return nil, err
		}
		return &stale, nil
	}
	return s, nil
}

func TestCloseRecomputesWhenPostingRaces(t *testing.T) {
	repo := &racingShiftRepo{
		fakeShiftRepo: newFakeShiftRepo(),
		lateSale:      decimal.NewFromInt(700),
	}
	svc := NewShiftService(repo, nil, nil)
	ctx := context.Background()
	id := openShift(t, svc, "2026-03-01", "morning", "1000")
	require.NoError(t, svc.RecordSale(ctx, id, decimal.NewFromInt(500)))

	resp, err := svc.Close(ctx, id, decimal.NewFromInt(2200), uuid.New())
	require.NoError(t, err)

	// The 700 that landed mid-close is inside both the stored totals and the
	// computed figures — expected = 1000 + 1200 = 2200, balanced.
	assert.Equal(t, "1200", resp.TotalSales.String())
	assert.Equal(t, "2200", resp.ExpectedCash.String())
	assert.Equal(t, model.ShiftBalanced, *resp.Result)

	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, stored.TotalSales.String(), resp.TotalSales.String())
	assert.Equal(t, stored.ExpectedCash.String(), resp.ExpectedCash.String())
}
