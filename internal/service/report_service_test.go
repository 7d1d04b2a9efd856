package service

import (
	"context"
	"testing"

	"dukaledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockSummaryValuesRemainingStock(t *testing.T) {
	items := newFakeItemRepo()
	batches := newFakeBatchRepo()
	svc := NewReportService(items, batches, newFakeLossRepo(), newFakeShiftRepo())
	ctx := context.Background()

	beef := &model.Item{Name: "Beef", Unit: "kg", Active: true}
	require.NoError(t, items.Create(ctx, beef))
	inactive := &model.Item{Name: "Discontinued", Unit: "kg", Active: false}
	require.NoError(t, items.Create(ctx, inactive))

	oldest := seedBatch(t, batches, beef.ID, "2026-03-01", "10.000")
	seedBatch(t, batches, beef.ID, "2026-03-05", "20.000")

	resp, err := svc.StockSummary(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1) // inactive item excluded

	row := resp.Items[0]
	assert.Equal(t, "Beef", row.ItemName)
	assert.Equal(t, 2, row.BatchCount)
	assert.Equal(t, "30", row.OnHand.String())
	assert.Equal(t, "15000", row.CostValue.String()) // 30 kg at 500
	require.NotNil(t, row.OldestBatch)
	assert.Equal(t, oldest.String(), *row.OldestBatch)
	require.NotNil(t, row.OldestSince)
	assert.Equal(t, "2026-03-01", *row.OldestSince)
}

func TestShiftDashboardCountsResults(t *testing.T) {
	shifts := newFakeShiftRepo()
	reportSvc := NewReportService(newFakeItemRepo(), newFakeBatchRepo(), newFakeLossRepo(), shifts)
	shiftSvc := NewShiftService(shifts, nil, nil)
	ctx := context.Background()

	// Balanced morning shift
	id := openShift(t, shiftSvc, "2026-03-01", "morning", "1000")
	require.NoError(t, shiftSvc.RecordSale(ctx, id, decimal.NewFromInt(500)))
	_, err := shiftSvc.Close(ctx, id, decimal.NewFromInt(1500), uuid.Nil)
	require.NoError(t, err)

	// Short evening shift
	id = openShift(t, shiftSvc, "2026-03-01", "evening", "1000")
	require.NoError(t, shiftSvc.RecordSale(ctx, id, decimal.NewFromInt(800)))
	_, err = shiftSvc.Close(ctx, id, decimal.NewFromInt(1700), uuid.Nil)
	require.NoError(t, err)

	// Still open
	openShift(t, shiftSvc, "2026-03-02", "morning", "1000")

	resp, err := reportSvc.ShiftDashboard(ctx, mustDay(t, "2026-03-01"), mustDay(t, "2026-03-05"))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ShiftCount)
	assert.Equal(t, 2, resp.ClosedCount)
	assert.Equal(t, 1, resp.BalancedCount)
	assert.Equal(t, 1, resp.ShortageCount)
	assert.Equal(t, 0, resp.OverageCount)
	assert.Equal(t, "1300", resp.TotalSales.String())
	assert.Equal(t, "-100", resp.TotalVariance.String())
}
