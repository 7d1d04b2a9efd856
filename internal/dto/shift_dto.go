package dto

import "github.com/shopspring/decimal"

type OpenShiftRequest struct {
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type        string          `json:"type" validate:"required,oneof=morning evening"`
	OpeningCash decimal.Decimal `json:"opening_cash" validate:"min=0"`
}

// ShiftAmountRequest covers sale / expense / voucher postings.
type ShiftAmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type CloseShiftRequest struct {
	ClosingCash decimal.Decimal `json:"closing_cash" validate:"min=0"`
}

type ShiftResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	OpenedBy    string          `json:"opened_by"`
	ClosedBy    *string         `json:"closed_by,omitempty"`
	OpeningCash decimal.Decimal `json:"opening_cash"`

	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalVouchers decimal.Decimal `json:"total_vouchers"`

	ClosingCash  *decimal.Decimal `json:"closing_cash,omitempty"`
	NetSales     *decimal.Decimal `json:"net_sales,omitempty"`
	ExpectedCash *decimal.Decimal `json:"expected_cash,omitempty"`
	Variance     *decimal.Decimal `json:"variance,omitempty"`
	Result       *string          `json:"result,omitempty"`

	Status   string  `json:"status"`
	OpenedAt string  `json:"opened_at"`
	ClosedAt *string `json:"closed_at,omitempty"`
}

type ShiftListResponse struct {
	Data  []ShiftResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
