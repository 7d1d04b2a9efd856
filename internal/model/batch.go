package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch lifecycle states.
const (
	BatchAvailable = "available"
	BatchSoldOut   = "sold_out"
)

// Batch is one dated, costed lot of perishable stock belonging to a single
// Item. AvailableQty only moves down (sale, loss) or within corrective bounds;
// it must stay inside [0, InitialQty] at all times. Batches are never deleted,
// only marked sold_out once exhausted.
type Batch struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AcquiredOn time.Time       `gorm:"type:date;not null;index"`
	InitialQty decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	// AvailableQty is mutated only through conditional UPDATEs so that two
	// concurrent depletions cannot both succeed on the same remaining stock.
	AvailableQty decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Supplier     string          `gorm:"type:varchar(120)"`
	Status       string          `gorm:"type:varchar(20);not null;default:'available'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Item *Item `gorm:"foreignKey:ItemID"`
}

// TableName overrides GORM's default pluralization.
func (Batch) TableName() string { return "batches" }
