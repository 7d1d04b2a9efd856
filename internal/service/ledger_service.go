package service

import (
	"context"
	"fmt"
	"time"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService is the append-only movement ledger and its balance
// projections. Balances are always recomputed from entries — there is no
// cached closing figure anywhere to go stale.
type LedgerService interface {
	Append(ctx context.Context, req dto.AppendMovementRequest) (*dto.MovementResponse, error)
	ComputeBalance(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.BalanceResponse, error)
	Aggregate(ctx context.Context, itemID uuid.UUID, from, to time.Time) (*dto.LedgerReportResponse, error)
	ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error)
}

type ledgerService struct {
	movements repository.MovementRepository
	items     repository.ItemRepository
}

func NewLedgerService(movements repository.MovementRepository, items repository.ItemRepository) LedgerService {
	return &ledgerService{movements: movements, items: items}
}

func (s *ledgerService) Append(ctx context.Context, req dto.AppendMovementRequest) (*dto.MovementResponse, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item_id: %w", err)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	// Zero deltas carry no information except as explicit opening balances.
	if req.Qty.IsZero() && req.Type != model.MovementOpeningBalance {
		return nil, fmt.Errorf("zero quantity for %s entry: %w", req.Type, model.ErrInvalidQuantity)
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, fmt.Errorf("item %s: %w", itemID, err)
	}

	var batchID *uuid.UUID
	if req.BatchID != nil {
		id, err := uuid.Parse(*req.BatchID)
		if err != nil {
			return nil, fmt.Errorf("invalid batch_id: %w", err)
		}
		batchID = &id
	}

	mov := &model.Movement{
		ItemID:    itemID,
		Date:      date,
		Type:      req.Type,
		Qty:       req.Qty,
		UnitValue: req.UnitValue,
		BatchID:   batchID,
		Reason:    req.Reason,
	}
	if err := s.movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return movementToResponse(mov), nil
}

// ComputeBalance derives {opening, closing} for one item and date. Opening is
// the sum of all deltas strictly before the date, which by the chain property
// equals the most recent prior closing (or zero with no history).
func (s *ledgerService) ComputeBalance(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.BalanceResponse, error) {
	day := dayOf(date)
	opening, err := s.movements.SumBefore(ctx, itemID, day)
	if err != nil {
		return nil, err
	}
	sameDay, err := s.movements.SumOn(ctx, itemID, day)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		ItemID:  itemID.String(),
		Date:    day.Format(dateLayout),
		Opening: opening,
		Closing: opening.Add(sameDay),
	}, nil
}

// Aggregate builds the per-date stock report: one row per date with at least
// one entry, balances chained from the opening position at range start.
// TotalValue is a purchase cost basis only: delta times unit value, summed
// over purchase entries.
func (s *ledgerService) Aggregate(ctx context.Context, itemID uuid.UUID, from, to time.Time) (*dto.LedgerReportResponse, error) {
	from, to = dayOf(from), dayOf(to)
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s before start %s: %w", to.Format(dateLayout), from.Format(dateLayout), model.ErrInvalidQuantity)
	}

	opening, err := s.movements.SumBefore(ctx, itemID, from)
	if err != nil {
		return nil, err
	}
	entries, err := s.movements.ListRange(ctx, itemID, from, to)
	if err != nil {
		return nil, err
	}

	report := &dto.LedgerReportResponse{
		ItemID: itemID.String(),
		From:   from.Format(dateLayout),
		To:     to.Format(dateLayout),
	}

	running := opening
	var row *dto.LedgerRow
	flush := func() {
		if row != nil {
			report.Rows = append(report.Rows, *row)
			row = nil
		}
	}

	for i := range entries {
		e := &entries[i]
		day := dayOf(e.Date)
		if row == nil || row.Date != day.Format(dateLayout) {
			flush()
			row = &dto.LedgerRow{
				Date:       day.Format(dateLayout),
				Opening:    running,
				Purchased:  decimal.Zero,
				Issued:     decimal.Zero,
				Returned:   decimal.Zero,
				Adjusted:   decimal.Zero,
				Lost:       decimal.Zero,
				Closing:    running,
				TotalValue: decimal.Zero,
			}
		}

		switch e.Type {
		case model.MovementPurchase:
			row.Purchased = row.Purchased.Add(e.Qty)
			if e.UnitValue != nil {
				row.TotalValue = row.TotalValue.Add(e.Qty.Mul(*e.UnitValue))
			}
		case model.MovementIssue:
			row.Issued = row.Issued.Sub(e.Qty) // deltas are negative; report magnitude
		case model.MovementReturn:
			row.Returned = row.Returned.Sub(e.Qty)
		case model.MovementAdjustment, model.MovementOpeningBalance:
			// Opening carry-forwards are balance corrections, not purchases.
			row.Adjusted = row.Adjusted.Add(e.Qty)
		case model.MovementLoss:
			row.Lost = row.Lost.Sub(e.Qty)
		}

		running = running.Add(e.Qty)
		row.Closing = running
	}
	flush()

	return report, nil
}

func (s *ledgerService) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movs, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for i := range movs {
		items = append(items, *movementToResponse(&movs[i]))
	}
	return &dto.MovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movementToResponse(m *model.Movement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:        m.ID.String(),
		ItemID:    m.ItemID.String(),
		Date:      dayOf(m.Date).Format(dateLayout),
		Type:      m.Type,
		Qty:       m.Qty,
		UnitValue: m.UnitValue,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.BatchID != nil {
		id := m.BatchID.String()
		resp.BatchID = &id
	}
	if m.Item != nil {
		resp.ItemName = m.Item.Name
	}
	return resp
}
