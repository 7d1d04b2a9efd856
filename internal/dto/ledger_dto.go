package dto

import "github.com/shopspring/decimal"

type AppendMovementRequest struct {
	ItemID    string           `json:"item_id" validate:"required,uuid4"`
	Date      string           `json:"date" validate:"required,datetime=2006-01-02"`
	Type      string           `json:"type" validate:"required,oneof=purchase issue return adjustment loss opening_balance"`
	Qty       decimal.Decimal  `json:"qty"`
	UnitValue *decimal.Decimal `json:"unit_value,omitempty"`
	BatchID   *string          `json:"batch_id,omitempty" validate:"omitempty,uuid4"`
	Reason    string           `json:"reason" validate:"max=255"`
}

type MovementResponse struct {
	ID        string           `json:"id"`
	ItemID    string           `json:"item_id"`
	ItemName  string           `json:"item_name,omitempty"`
	Date      string           `json:"date"`
	Type      string           `json:"type"`
	Qty       decimal.Decimal  `json:"qty"`
	UnitValue *decimal.Decimal `json:"unit_value,omitempty"`
	BatchID   *string          `json:"batch_id,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	CreatedAt string           `json:"created_at"`
}

type BalanceResponse struct {
	ItemID  string          `json:"item_id"`
	Date    string          `json:"date"`
	Opening decimal.Decimal `json:"opening"`
	Closing decimal.Decimal `json:"closing"`
}

// LedgerRow is one line of the per-date stock aggregate: running balances
// plus per-type quantity columns. TotalValue is purchase cost basis only.
type LedgerRow struct {
	Date       string          `json:"date"`
	Opening    decimal.Decimal `json:"opening"`
	Purchased  decimal.Decimal `json:"purchased"`
	Issued     decimal.Decimal `json:"issued"`
	Returned   decimal.Decimal `json:"returned"`
	Adjusted   decimal.Decimal `json:"adjusted"`
	Lost       decimal.Decimal `json:"lost"`
	Closing    decimal.Decimal `json:"closing"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type LedgerReportResponse struct {
	ItemID string      `json:"item_id"`
	From   string      `json:"from"`
	To     string      `json:"to"`
	Rows   []LedgerRow `json:"rows"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
