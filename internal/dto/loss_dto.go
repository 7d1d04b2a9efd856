package dto

import "github.com/shopspring/decimal"

type RecordLossRequest struct {
	BatchID  string          `json:"batch_id" validate:"required,uuid4"`
	Qty      decimal.Decimal `json:"qty" validate:"required"`
	Category string          `json:"category" validate:"required,oneof=drying bone trim spoilage other"`
	Reason   string          `json:"reason" validate:"max=255"`
}

type LossResponse struct {
	ID         string          `json:"id"`
	BatchID    string          `json:"batch_id"`
	ItemID     string          `json:"item_id"`
	Qty        decimal.Decimal `json:"qty"`
	Category   string          `json:"category"`
	Reason     string          `json:"reason,omitempty"`
	RecordedBy string          `json:"recorded_by"`
	// BatchRemaining is the batch's available quantity after the loss landed.
	BatchRemaining decimal.Decimal `json:"batch_remaining"`
	CreatedAt      string          `json:"created_at"`
}

type CategoryTotalsResponse struct {
	From   string                     `json:"from"`
	To     string                     `json:"to"`
	Totals map[string]decimal.Decimal `json:"totals"`
}
