package model

import (
	"time"

	"github.com/google/uuid"
)

// Farmer is a supplier the company buys fish from. Purchase bills against a
// farmer are settled through incremental payments.
type Farmer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Phone     *string
	Village   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Farmer) TableName() string { return "farmers" }
