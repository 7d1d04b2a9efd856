package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types. Quantity sign convention: purchases and returns are
// positive, issues and losses negative, adjustments either.
const (
	MovementPurchase       = "purchase"
	MovementIssue          = "issue"
	MovementReturn         = "return"
	MovementAdjustment     = "adjustment"
	MovementLoss           = "loss"
	MovementOpeningBalance = "opening_balance"
)

// Movement is one immutable ledger line: a quantity change for an item on a
// date. Movements are NEVER modified or deleted — corrections create
// offsetting entries. Opening/closing balances for any date derive purely
// from the sum of entries, so the ledger is the single source of truth.
type Movement struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID uuid.UUID `gorm:"type:uuid;not null;index:idx_movements_item_date"`
	Date   time.Time `gorm:"type:date;not null;index:idx_movements_item_date"`
	Type   string    `gorm:"type:varchar(20);not null"`
	// Qty is the signed delta applied to the item balance.
	Qty       decimal.Decimal  `gorm:"type:decimal(12,3);not null"`
	UnitValue *decimal.Decimal `gorm:"type:decimal(12,2)"`
	BatchID   *uuid.UUID       `gorm:"type:uuid;index"`
	Reason    string           `gorm:"type:varchar(255)"`
	CreatedAt time.Time

	Item *Item `gorm:"foreignKey:ItemID"`
}

// TableName overrides GORM's default pluralization.
func (Movement) TableName() string { return "movements" }
