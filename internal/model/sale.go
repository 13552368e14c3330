package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a raw ledger row, distinct from SalesBill: one row per
// (customer, item, date), holding that day's delivered quantities.
//
// The natural-key uniqueness is enforced at the write site (upsert), not by a
// DB constraint — legacy rows written before the upsert path may still violate
// it, which is what the duplicate reconciler cleans up.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID       `gorm:"type:uuid;index:idx_sales_natural;not null"`
	ItemID     uuid.UUID       `gorm:"type:uuid;index:idx_sales_natural;not null"`
	SaleDate   time.Time       `gorm:"type:date;index:idx_sales_natural;not null"`
	Crates     int             `gorm:"not null;default:0"`
	Kg         decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	CreatedAt  time.Time       `gorm:"index"`
	UpdatedAt  time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Item     *Item     `gorm:"foreignKey:ItemID"`
}

func (Sale) TableName() string { return "sales" }
