package worker

// document_worker.go
// Processes bill PDF render jobs from QueueDocument.
// Renders the sales bill to PDF via fpdf and, when an email address was
// supplied with the bill, chains an email job for the rendered file.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/infra"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxDocumentRetries caps how often the retry cron re-attempts a failed
// render before parking the document in the DLQ.
const MaxDocumentRetries = 3

// DocumentJobPayload is the job envelope sent to QueueDocument.
type DocumentJobPayload struct {
	SalesBillID string  `json:"sales_bill_id"`
	EmailTo     *string `json:"email_to,omitempty"`
}

// DocumentWorker renders sales bill PDFs from QueueDocument jobs and records
// the outcome on the bill's document row.
type DocumentWorker struct {
	docRepo        repository.DocumentRepository
	billRepo       repository.SalesBillRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	businessName   string
}

func NewDocumentWorker(
	docRepo repository.DocumentRepository,
	billRepo repository.SalesBillRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	businessName string,
) *DocumentWorker {
	return &DocumentWorker{
		docRepo:        docRepo,
		billRepo:       billRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		businessName:   businessName,
	}
}

// Process handles a single document job:
//  1. Parse DocumentJobPayload from the job envelope
//  2. Fetch the bill (with items and customer) from DB
//  3. Find or create the document row, status "pending"
//  4. Render the PDF with retry (max 3 in-process attempts)
//  5. Update the document row (generated / scheduled for cron retry)
//  6. Optionally chain an email job
func (w *DocumentWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload DocumentJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("document_worker: invalid payload")
		return
	}

	billID, err := uuid.Parse(payload.SalesBillID)
	if err != nil {
		log.Error().Str("sales_bill_id", payload.SalesBillID).Msg("document_worker: invalid sales_bill_id")
		return
	}

	bill, err := w.billRepo.FindByID(ctx, billID)
	if err != nil {
		log.Error().Err(err).Str("sales_bill_id", payload.SalesBillID).Msg("document_worker: bill not found")
		return
	}

	doc, err := w.docRepo.FindBySalesBillID(ctx, billID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		doc = &model.Document{SalesBillID: billID, Status: "pending"}
		if err := w.docRepo.Create(ctx, doc); err != nil {
			log.Error().Err(err).Str("sales_bill_id", payload.SalesBillID).Msg("document_worker: failed to create document")
			return
		}
	} else if err != nil {
		log.Error().Err(err).Str("sales_bill_id", payload.SalesBillID).Msg("document_worker: document lookup failed")
		return
	}

	var pdfName string
	renderErr := withRetry(ctx, 3, func(attempt int) error {
		name, err := infra.GenerateBillPDF(bill, w.businessName, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("bill_number", bill.BillNumber).
				Msg("document_worker: render attempt failed, retrying")
			return err
		}
		pdfName = name
		return nil
	})

	if renderErr != nil {
		// Leave it pending with a retry slot — the cron picks it up.
		doc.RetryCount++
		errMsg := renderErr.Error()
		doc.LastError = &errMsg
		next := time.Now().Add(computeRetryBackoff(doc.RetryCount))
		doc.NextRetryAt = &next
		_ = w.docRepo.Update(ctx, doc)
		log.Error().Err(renderErr).Str("bill_number", bill.BillNumber).
			Msg("document_worker: render failed after all attempts, scheduled for cron retry")
		return
	}

	doc.Status = "generated"
	doc.PDFPath = &pdfName
	doc.NextRetryAt = nil
	doc.LastError = nil
	if err := w.docRepo.Update(ctx, doc); err != nil {
		log.Error().Err(err).Str("bill_number", bill.BillNumber).Msg("document_worker: failed to update document")
		return
	}
	log.Info().Str("pdf", pdfName).Str("bill_number", bill.BillNumber).Msg("document_worker: PDF generated")

	if payload.EmailTo != nil && *payload.EmailTo != "" {
		emailJob := EmailJobPayload{
			DocumentID: doc.ID.String(),
			ToEmail:    *payload.EmailTo,
			Subject:    fmt.Sprintf("Bill %s — %s", bill.BillNumber, w.businessName),
			Body: fmt.Sprintf("Please find your bill attached.\nBill No: %s\nTotal: %s\nBalance due: %s",
				bill.BillNumber, bill.Total.StringFixed(2), bill.BalanceDue.StringFixed(2)),
			PDFPath: filepath.Join(w.pdfStoragePath, pdfName),
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.EmailTo).Msg("document_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.EmailTo).Msg("document_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// computeRetryBackoff spaces cron retries: 1m, 2m, 4m …
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	return time.Duration(1<<uint(retryCount-1)) * time.Minute
}
