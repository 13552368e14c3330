package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a dated operating cost entry (ice, fuel, labour, rent, …).
type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SpentOn   time.Time       `gorm:"type:date;index;not null"`
	Category  string          `gorm:"type:varchar(30);index;not null"`
	Label     string          `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Expense) TableName() string { return "expenses" }
