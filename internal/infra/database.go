package infra

import (
	"fmt"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes mostly).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Item{},
		&model.Customer{},
		&model.Farmer{},
		&model.SalesBill{},
		&model.LineItem{},
		&model.PurchaseBill{},
		&model.PurchaseBillItem{},
		&model.PurchaseDeduction{},
		&model.Payment{},
		&model.Sale{},
		&model.Expense{},
		&model.Document{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the retry cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_documents_pending_retry') THEN
		    CREATE INDEX idx_documents_pending_retry
		        ON documents (next_retry_at)
		        WHERE status = 'pending' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
		// rate resolution scans line items newest-first per item
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_line_items_item_created') THEN
		    CREATE INDEX idx_line_items_item_created
		        ON line_items (item_id, created_at DESC, id DESC);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_purchase_bill_items_item_created') THEN
		    CREATE INDEX idx_purchase_bill_items_item_created
		        ON purchase_bill_items (item_id, created_at DESC, id DESC);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
