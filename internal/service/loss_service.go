package service

import (
	"context"
	"fmt"
	"time"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LossService records weight/quantity losses against specific batches.
// The batch decrement, the loss ledger entry and the loss record are one
// transaction — a failing validation leaves all three stores untouched.
type LossService interface {
	RecordLoss(ctx context.Context, req dto.RecordLossRequest, recordedBy uuid.UUID) (*dto.LossResponse, error)
	CategoryTotals(ctx context.Context, from, to time.Time) (*dto.CategoryTotalsResponse, error)
}

type lossService struct {
	losses    repository.LossRepository
	batches   repository.BatchRepository
	movements repository.MovementRepository
}

func NewLossService(losses repository.LossRepository, batches repository.BatchRepository, movements repository.MovementRepository) LossService {
	return &lossService{losses: losses, batches: batches, movements: movements}
}

func (s *lossService) RecordLoss(ctx context.Context, req dto.RecordLossRequest, recordedBy uuid.UUID) (*dto.LossResponse, error) {
	if !req.Qty.IsPositive() {
		return nil, fmt.Errorf("loss quantity %s: %w", req.Qty, model.ErrInvalidQuantity)
	}
	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("invalid batch_id: %w", err)
	}

	loss := &model.LossRecord{
		BatchID:    batchID,
		Qty:        req.Qty,
		Category:   req.Category,
		Reason:     req.Reason,
		RecordedBy: recordedBy,
	}
	var remaining = req.Qty // overwritten below

	txErr := runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		// The stock guard runs first: an oversized loss fails here and the
		// transaction rolls back with nothing written.
		b, err := s.batches.DepleteTx(tx, batchID, req.Qty)
		if err != nil {
			return err
		}
		loss.ItemID = b.ItemID
		remaining = b.AvailableQty

		mov := &model.Movement{
			ItemID:  b.ItemID,
			Date:    dayOf(nowFn()),
			Type:    model.MovementLoss,
			Qty:     req.Qty.Neg(),
			BatchID: &b.ID,
			Reason:  fmt.Sprintf("%s loss: %s", req.Category, req.Reason),
		}
		if err := s.movements.CreateTx(tx, mov); err != nil {
			return err
		}
		return s.losses.CreateTx(tx, loss)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.LossResponse{
		ID:             loss.ID.String(),
		BatchID:        batchID.String(),
		ItemID:         loss.ItemID.String(),
		Qty:            loss.Qty,
		Category:       loss.Category,
		Reason:         loss.Reason,
		RecordedBy:     recordedBy.String(),
		BatchRemaining: remaining,
		CreatedAt:      loss.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *lossService) CategoryTotals(ctx context.Context, from, to time.Time) (*dto.CategoryTotalsResponse, error) {
	from, to = dayOf(from), dayOf(to)
	totals, err := s.losses.CategoryTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryTotalsResponse{
		From:   from.Format(dateLayout),
		To:     to.Format(dateLayout),
		Totals: totals,
	}, nil
}
