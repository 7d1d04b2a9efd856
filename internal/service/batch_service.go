package service

import (
	"context"
	"fmt"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BatchService owns perishable stock lots and their FIFO depletion. Every
// quantity mutation also lands in the movement ledger in the same transaction,
// so batch state and ledger balances can never drift apart.
type BatchService interface {
	Create(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error)
	ListAvailable(ctx context.Context, itemID uuid.UUID) ([]dto.BatchResponse, error)
	// Deplete consumes qty from one specific batch (POS sale against a known
	// lot). Fails with ErrInsufficientStock before touching anything.
	Deplete(ctx context.Context, batchID uuid.UUID, qty decimal.Decimal, ref string) (*dto.DepletionResponse, error)
	// DepleteFIFO consumes qty from the item's batches oldest-first, possibly
	// spanning several lots. All-or-nothing: a shortfall rolls everything back.
	DepleteFIFO(ctx context.Context, req dto.DepleteForSaleRequest) (*dto.FIFODepletionResponse, error)
	Adjust(ctx context.Context, batchID uuid.UUID, req dto.AdjustBatchRequest) (*dto.BatchResponse, error)
}

type batchService struct {
	batches   repository.BatchRepository
	items     repository.ItemRepository
	movements repository.MovementRepository
}

func NewBatchService(batches repository.BatchRepository, items repository.ItemRepository, movements repository.MovementRepository) BatchService {
	return &batchService{batches: batches, items: items, movements: movements}
}

func (s *batchService) Create(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if !req.InitialQty.IsPositive() {
		return nil, fmt.Errorf("initial quantity %s: %w", req.InitialQty, model.ErrInvalidQuantity)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item_id: %w", err)
	}
	acquiredOn, err := parseDate(req.AcquiredOn)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, fmt.Errorf("item %s: %w", itemID, err)
	}

	batch := &model.Batch{
		ItemID:       itemID,
		AcquiredOn:   acquiredOn,
		InitialQty:   req.InitialQty,
		AvailableQty: req.InitialQty,
		UnitCost:     req.UnitCost,
		UnitPrice:    req.UnitPrice,
		Supplier:     req.Supplier,
		Status:       model.BatchAvailable,
	}

	// Batch intake and its purchase ledger entry commit together.
	unitCost := req.UnitCost
	txErr := runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		if err := s.batches.CreateTx(tx, batch); err != nil {
			return err
		}
		mov := &model.Movement{
			ItemID:    itemID,
			Date:      acquiredOn,
			Type:      model.MovementPurchase,
			Qty:       req.InitialQty,
			UnitValue: &unitCost,
			BatchID:   &batch.ID,
			Reason:    fmt.Sprintf("batch intake from %s", req.Supplier),
		}
		return s.movements.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return batchToResponse(batch), nil
}

func (s *batchService) Get(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error) {
	b, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return batchToResponse(b), nil
}

func (s *batchService) ListAvailable(ctx context.Context, itemID uuid.UUID) ([]dto.BatchResponse, error) {
	batches, err := s.batches.ListAvailableByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		out = append(out, *batchToResponse(&batches[i]))
	}
	return out, nil
}

func (s *batchService) Deplete(ctx context.Context, batchID uuid.UUID, qty decimal.Decimal, ref string) (*dto.DepletionResponse, error) {
	if !qty.IsPositive() {
		return nil, fmt.Errorf("depletion quantity %s: %w", qty, model.ErrInvalidQuantity)
	}

	var result *dto.DepletionResponse
	txErr := runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		b, err := s.batches.DepleteTx(tx, batchID, qty)
		if err != nil {
			return err
		}
		reason := ref
		if reason == "" {
			reason = "sale depletion"
		}
		mov := &model.Movement{
			ItemID:  b.ItemID,
			Date:    dayOf(nowFn()),
			Type:    model.MovementIssue,
			Qty:     qty.Neg(),
			BatchID: &b.ID,
			Reason:  reason,
		}
		if err := s.movements.CreateTx(tx, mov); err != nil {
			return err
		}
		result = &dto.DepletionResponse{
			BatchID:   b.ID.String(),
			Consumed:  qty,
			UnitCost:  b.UnitCost,
			Remaining: b.AvailableQty,
			SoldOut:   b.Status == model.BatchSoldOut,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

func (s *batchService) DepleteFIFO(ctx context.Context, req dto.DepleteForSaleRequest) (*dto.FIFODepletionResponse, error) {
	if !req.Qty.IsPositive() {
		return nil, fmt.Errorf("depletion quantity %s: %w", req.Qty, model.ErrInvalidQuantity)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item_id: %w", err)
	}

	resp := &dto.FIFODepletionResponse{
		ItemID:    itemID.String(),
		Requested: req.Qty,
		TotalCost: decimal.Zero,
	}

	txErr := runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		batches, err := s.batches.ListAvailableByItem(ctx, itemID)
		if err != nil {
			return err
		}

		remaining := req.Qty
		for i := range batches {
			if !remaining.IsPositive() {
				break
			}
			take := decimal.Min(remaining, batches[i].AvailableQty)
			b, err := s.batches.DepleteTx(tx, batches[i].ID, take)
			if err != nil {
				// A concurrent writer shrank this batch under us; the guard
				// already protected the stock, so surface the conflict.
				return err
			}
			reason := req.Ref
			if reason == "" {
				reason = "sale depletion"
			}
			mov := &model.Movement{
				ItemID:  itemID,
				Date:    dayOf(nowFn()),
				Type:    model.MovementIssue,
				Qty:     take.Neg(),
				BatchID: &b.ID,
				Reason:  reason,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
			resp.Portions = append(resp.Portions, dto.DepletionResponse{
				BatchID:   b.ID.String(),
				Consumed:  take,
				UnitCost:  b.UnitCost,
				Remaining: b.AvailableQty,
				SoldOut:   b.Status == model.BatchSoldOut,
			})
			resp.TotalCost = resp.TotalCost.Add(take.Mul(b.UnitCost))
			remaining = remaining.Sub(take)
		}

		if remaining.IsPositive() {
			return fmt.Errorf("item %s short by %s: %w", itemID, remaining, model.ErrInsufficientStock)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

func (s *batchService) Adjust(ctx context.Context, batchID uuid.UUID, req dto.AdjustBatchRequest) (*dto.BatchResponse, error) {
	if req.Delta.IsZero() {
		return nil, fmt.Errorf("zero adjustment: %w", model.ErrInvalidAdjustment)
	}

	var out *dto.BatchResponse
	txErr := runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		b, err := s.batches.AdjustTx(tx, batchID, req.Delta)
		if err != nil {
			return err
		}
		mov := &model.Movement{
			ItemID:  b.ItemID,
			Date:    dayOf(nowFn()),
			Type:    model.MovementAdjustment,
			Qty:     req.Delta,
			BatchID: &b.ID,
			Reason:  req.Reason,
		}
		if err := s.movements.CreateTx(tx, mov); err != nil {
			return err
		}
		out = batchToResponse(b)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

func batchToResponse(b *model.Batch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:           b.ID.String(),
		ItemID:       b.ItemID.String(),
		AcquiredOn:   b.AcquiredOn.Format(dateLayout),
		InitialQty:   b.InitialQty,
		AvailableQty: b.AvailableQty,
		UnitCost:     b.UnitCost,
		UnitPrice:    b.UnitPrice,
		Supplier:     b.Supplier,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
