package model

import (
	"time"

	"github.com/google/uuid"
)

// Document tracks the rendered PDF for a sales bill.
// Status: "pending" | "generated" | "error"
type Document struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalesBillID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// PDFPath is relative to PDF_STORAGE_PATH
	PDFPath   *string `gorm:"column:pdf_path"`
	EmailedTo *string
	// Retry fields — used by the retry cron to re-attempt failed renders
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Document) TableName() string { return "documents" }
