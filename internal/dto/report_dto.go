package dto

import "github.com/shopspring/decimal"

// StockSummaryRow is the per-item dashboard projection: batch counts, on-hand
// quantity and cost valuation of remaining stock.
type StockSummaryRow struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Unit         string          `json:"unit"`
	BatchCount   int             `json:"batch_count"`
	OnHand       decimal.Decimal `json:"on_hand"`
	CostValue    decimal.Decimal `json:"cost_value"`
	OldestBatch  *string         `json:"oldest_batch,omitempty"`
	OldestSince  *string         `json:"oldest_since,omitempty"`
}

type StockSummaryResponse struct {
	Items []StockSummaryRow `json:"items"`
}

type LossSummaryResponse struct {
	From     string                     `json:"from"`
	To       string                     `json:"to"`
	Totals   map[string]decimal.Decimal `json:"totals"`
	TotalQty decimal.Decimal            `json:"total_qty"`
}

// ShiftDashboardResponse summarizes a date range of closed shifts.
type ShiftDashboardResponse struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	ShiftCount    int             `json:"shift_count"`
	ClosedCount   int             `json:"closed_count"`
	BalancedCount int             `json:"balanced_count"`
	OverageCount  int             `json:"overage_count"`
	ShortageCount int             `json:"shortage_count"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalVariance decimal.Decimal `json:"total_variance"`
}
