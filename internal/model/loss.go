package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loss categories for butchery / perishable shrinkage accounting.
const (
	LossDrying   = "drying"
	LossBone     = "bone"
	LossTrim     = "trim"
	LossSpoilage = "spoilage"
	LossOther    = "other"
)

// LossRecord ties a loss movement to the specific batch it was taken from.
// Creating one decrements the batch and appends a loss Movement in the same
// transaction — either all three land or none do.
type LossRecord struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Category   string          `gorm:"type:varchar(20);not null;index"`
	Reason     string          `gorm:"type:varchar(255)"`
	RecordedBy uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt  time.Time       `gorm:"index"`

	Batch *Batch `gorm:"foreignKey:BatchID"`
}

// TableName overrides GORM's default pluralization.
func (LossRecord) TableName() string { return "loss_records" }
