package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is a trackable product or ingredient. Identity is immutable; display
// attributes are maintained by the configuration frontend.
type Item struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string    `gorm:"index;not null"`
	Unit   string    `gorm:"not null;default:'kg'"` // kg | pcs | ltr
	Active bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
