package service

import (
	"context"
	"testing"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLossFixture(t *testing.T) (*fakeBatchRepo, *fakeMovementRepo, *fakeLossRepo, LossService, uuid.UUID) {
	t.Helper()
	batches := newFakeBatchRepo()
	movements := newFakeMovementRepo()
	losses := newFakeLossRepo()
	svc := NewLossService(losses, batches, movements)
	itemID := uuid.New()
	return batches, movements, losses, svc, itemID
}

func TestRecordLossDecrementsBatch(t *testing.T) {
	batches, movements, losses, svc, itemID := newLossFixture(t)
	batchID := seedBatch(t, batches, itemID, "2026-03-01", "50.000")
	user := uuid.New()

	resp, err := svc.RecordLoss(context.Background(), dto.RecordLossRequest{
		BatchID:  batchID.String(),
		Qty:      decimal.RequireFromString("2.5"),
		Category: model.LossDrying,
		Reason:   "overnight weight loss",
	}, user)
	require.NoError(t, err)

	assert.Equal(t, "47.5", resp.BatchRemaining.String())
	assert.Equal(t, itemID.String(), resp.ItemID)
	assert.Equal(t, user.String(), resp.RecordedBy)

	b, err := batches.FindByID(context.Background(), batchID)
	require.NoError(t, err)
	assert.Equal(t, "47.5", b.AvailableQty.String())

	// One ledger entry with a negative delta, one loss record
	require.Len(t, movements.movements, 1)
	assert.Equal(t, model.MovementLoss, movements.movements[0].Type)
	assert.Equal(t, "-2.5", movements.movements[0].Qty.String())
	require.Len(t, losses.records, 1)
	assert.Equal(t, model.LossDrying, losses.records[0].Category)
}

func TestRecordLossOversizedLeavesEverythingUntouched(t *testing.T) {
	batches, movements, losses, svc, itemID := newLossFixture(t)
	batchID := seedBatch(t, batches, itemID, "2026-03-01", "50.000")

	_, err := svc.RecordLoss(context.Background(), dto.RecordLossRequest{
		BatchID:  batchID.String(),
		Qty:      decimal.RequireFromString("50.001"),
		Category: model.LossSpoilage,
	}, uuid.New())
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	b, err := batches.FindByID(context.Background(), batchID)
	require.NoError(t, err)
	assert.Equal(t, "50", b.AvailableQty.String())
	assert.Empty(t, movements.movements)
	assert.Empty(t, losses.records)
}

func TestRecordLossRejectsNonPositiveQty(t *testing.T) {
	batches, _, _, svc, itemID := newLossFixture(t)
	batchID := seedBatch(t, batches, itemID, "2026-03-01", "50.000")

	_, err := svc.RecordLoss(context.Background(), dto.RecordLossRequest{
		BatchID:  batchID.String(),
		Qty:      decimal.Zero,
		Category: model.LossTrim,
	}, uuid.New())
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	_, err = svc.RecordLoss(context.Background(), dto.RecordLossRequest{
		BatchID:  batchID.String(),
		Qty:      decimal.RequireFromString("-1"),
		Category: model.LossTrim,
	}, uuid.New())
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
}

func TestRecordLossUnknownBatch(t *testing.T) {
	_, _, _, svc, _ := newLossFixture(t)

	_, err := svc.RecordLoss(context.Background(), dto.RecordLossRequest{
		BatchID:  uuid.NewString(),
		Qty:      decimal.NewFromInt(1),
		Category: model.LossOther,
	}, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCategoryTotalsGroupsByCategory(t *testing.T) {
	batches, _, _, svc, itemID := newLossFixture(t)
	batchID := seedBatch(t, batches, itemID, "2026-03-01", "50.000")
	user := uuid.New()

	record := func(qty, category string) {
		_, err := svc.RecordLoss(context.Background(), dto.RecordLossRequest{
			BatchID:  batchID.String(),
			Qty:      decimal.RequireFromString(qty),
			Category: category,
		}, user)
		require.NoError(t, err)
	}
	record("1.5", model.LossDrying)
	record("0.5", model.LossDrying)
	record("2", model.LossBone)

	resp, err := svc.CategoryTotals(context.Background(), mustDay(t, "2000-01-01"), mustDay(t, "2100-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "2", resp.Totals[model.LossDrying].String())
	assert.Equal(t, "2", resp.Totals[model.LossBone].String())
}
