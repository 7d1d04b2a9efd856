package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanyProfile is the single-row business identity used on report headers
// and outgoing emails. It is read through an explicit cached accessor with an
// invalidation call — never held in a package-level variable.
type CompanyProfile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"not null"`
	Address  string
	Phone    string
	Email    string
	Currency string `gorm:"type:varchar(10);not null;default:'KES'"`

	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (CompanyProfile) TableName() string { return "company_profile" }
