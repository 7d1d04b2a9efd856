package dto

import "github.com/shopspring/decimal"

type CreateBatchRequest struct {
	ItemID     string          `json:"item_id" validate:"required,uuid4"`
	AcquiredOn string          `json:"acquired_on" validate:"required,datetime=2006-01-02"`
	InitialQty decimal.Decimal `json:"initial_qty" validate:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost" validate:"required,min=0"`
	UnitPrice  decimal.Decimal `json:"unit_price" validate:"required,min=0"`
	Supplier   string          `json:"supplier" validate:"max=120"`
}

type BatchResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	AcquiredOn   string          `json:"acquired_on"`
	InitialQty   decimal.Decimal `json:"initial_qty"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"created_at"`
}

type DepleteBatchRequest struct {
	Qty decimal.Decimal `json:"qty" validate:"required"`
}

// DepleteForSaleRequest depletes an item FIFO across its batches — this is the
// entry point the POS uses per sold line.
type DepleteForSaleRequest struct {
	ItemID string          `json:"item_id" validate:"required,uuid4"`
	Qty    decimal.Decimal `json:"qty" validate:"required"`
	Ref    string          `json:"ref" validate:"max=120"`
}

type AdjustBatchRequest struct {
	Delta  decimal.Decimal `json:"delta" validate:"required"`
	Reason string          `json:"reason" validate:"required,max=255"`
}

// DepletionResponse reports the cost basis actually consumed, which callers
// need to cost out the depletion (COGS).
type DepletionResponse struct {
	BatchID   string          `json:"batch_id"`
	Consumed  decimal.Decimal `json:"consumed"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Remaining decimal.Decimal `json:"remaining"`
	SoldOut   bool            `json:"sold_out"`
}

type FIFODepletionResponse struct {
	ItemID    string              `json:"item_id"`
	Requested decimal.Decimal     `json:"requested"`
	TotalCost decimal.Decimal     `json:"total_cost"`
	Portions  []DepletionResponse `json:"portions"`
}
