package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shift states and variance classifications.
const (
	ShiftOpen   = "open"
	ShiftClosed = "closed"

	ShiftBalanced = "balanced"
	ShiftOverage  = "overage"
	ShiftShortage = "shortage"
)

// Shift represents one cashier working period.
// Status: open → closed (terminal). OpeningCash is fixed at open; the three
// running totals accumulate while open via atomic increments; ClosingCash and
// the computed fields are written exactly once at close and never change.
type Shift struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftDate time.Time `gorm:"type:date;not null;index:idx_shifts_date_type"`
	// ShiftType: "morning" | "evening" — at most one open shift per (date, type).
	ShiftType   string          `gorm:"column:shift_type;type:varchar(20);not null;index:idx_shifts_date_type"`
	OpenedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	ClosedBy    *uuid.UUID      `gorm:"type:uuid"`
	OpeningCash decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TotalSales    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalVouchers decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	ClosingCash  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	NetSales     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpectedCash *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Variance     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Result: "balanced" | "overage" | "shortage" — set at close.
	Result *string `gorm:"type:varchar(20)"`

	Status   string     `gorm:"type:varchar(20);not null;default:'open'"`
	OpenedAt time.Time
	ClosedAt *time.Time
}

// TableName overrides GORM's default pluralization.
func (Shift) TableName() string { return "shifts" }
