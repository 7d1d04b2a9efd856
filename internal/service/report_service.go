package service

import (
	"context"
	"time"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService is the pure read side: dashboard projections composed from
// the batch, ledger, loss and shift stores. It never writes; every filter is
// applied here rather than pushed into authoritative state.
type ReportService interface {
	StockSummary(ctx context.Context) (*dto.StockSummaryResponse, error)
	LossSummary(ctx context.Context, from, to time.Time) (*dto.LossSummaryResponse, error)
	ShiftDashboard(ctx context.Context, from, to time.Time) (*dto.ShiftDashboardResponse, error)
}

type reportService struct {
	items   repository.ItemRepository
	batches repository.BatchRepository
	losses  repository.LossRepository
	shifts  repository.ShiftRepository
}

func NewReportService(items repository.ItemRepository, batches repository.BatchRepository, losses repository.LossRepository, shifts repository.ShiftRepository) ReportService {
	return &reportService{items: items, batches: batches, losses: losses, shifts: shifts}
}

func (s *reportService) StockSummary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	items, err := s.items.List(ctx, true)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockSummaryResponse{Items: make([]dto.StockSummaryRow, 0, len(items))}
	for i := range items {
		item := &items[i]
		batches, err := s.batches.ListAvailableByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}

		row := dto.StockSummaryRow{
			ItemID:    item.ID.String(),
			ItemName:  item.Name,
			Unit:      item.Unit,
			OnHand:    decimal.Zero,
			CostValue: decimal.Zero,
		}
		for j := range batches {
			b := &batches[j]
			row.BatchCount++
			row.OnHand = row.OnHand.Add(b.AvailableQty)
			row.CostValue = row.CostValue.Add(b.AvailableQty.Mul(b.UnitCost))
		}
		if len(batches) > 0 {
			oldest := batches[0] // FIFO order: first is oldest
			id := oldest.ID.String()
			since := dayOf(oldest.AcquiredOn).Format(dateLayout)
			row.OldestBatch = &id
			row.OldestSince = &since
		}
		resp.Items = append(resp.Items, row)
	}
	return resp, nil
}

func (s *reportService) LossSummary(ctx context.Context, from, to time.Time) (*dto.LossSummaryResponse, error) {
	from, to = dayOf(from), dayOf(to)
	totals, err := s.losses.CategoryTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sum := decimal.Zero
	for _, qty := range totals {
		sum = sum.Add(qty)
	}
	return &dto.LossSummaryResponse{
		From:     from.Format(dateLayout),
		To:       to.Format(dateLayout),
		Totals:   totals,
		TotalQty: sum,
	}, nil
}

func (s *reportService) ShiftDashboard(ctx context.Context, from, to time.Time) (*dto.ShiftDashboardResponse, error) {
	from, to = dayOf(from), dayOf(to)
	resp := &dto.ShiftDashboardResponse{
		From:          from.Format(dateLayout),
		To:            to.Format(dateLayout),
		TotalSales:    decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalVariance: decimal.Zero,
	}

	const pageSize = 200
	for page := 1; ; page++ {
		shifts, _, err := s.shifts.List(ctx, from, to, page, pageSize)
		if err != nil {
			return nil, err
		}
		for i := range shifts {
			sh := &shifts[i]
			resp.ShiftCount++
			resp.TotalSales = resp.TotalSales.Add(sh.TotalSales)
			resp.TotalExpenses = resp.TotalExpenses.Add(sh.TotalExpenses)
			if sh.Status != model.ShiftClosed {
				continue
			}
			resp.ClosedCount++
			if sh.Variance != nil {
				resp.TotalVariance = resp.TotalVariance.Add(*sh.Variance)
			}
			if sh.Result == nil {
				continue
			}
			switch *sh.Result {
			case model.ShiftBalanced:
				resp.BalancedCount++
			case model.ShiftOverage:
				resp.OverageCount++
			case model.ShiftShortage:
				resp.ShortageCount++
			}
		}
		if len(shifts) < pageSize {
			break
		}
	}
	return resp, nil
}
