package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer with running credit: unpaid bill balances carry forward
// into the next bill's grand total.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Phone     *string
	Email     *string
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string { return "customers" }
