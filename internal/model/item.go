package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a tradeable fish variety (rohu, katla, tilapia, …).
// CrateWeightKg is the nominal weight of one full crate for this variety and
// is copied into purchase bill items at bill time so later edits to the item
// never rewrite historical bills.
type Item struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"uniqueIndex;not null"`
	CrateWeightKg decimal.Decimal `gorm:"type:decimal(6,2);not null;default:35"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Item) TableName() string { return "items" }
