package worker

// retry_cron.go
// Background goroutine that periodically re-attempts PDF renders for
// documents stuck in status='pending' with a next_retry_at in the past.
// Renders that keep failing are parked in the DLQ after MaxDocumentRetries.

import (
	"context"
	"fmt"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/infra"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	DocumentRepo   repository.DocumentRepository
	BillRepo       repository.SalesBillRepository
	RDB            *redis.Client
	PDFStoragePath string
	BusinessName   string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending documents, and re-attempts the render.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	docs, err := cfg.DocumentRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(docs) == 0 {
		return
	}

	log.Info().Int("count", len(docs)).Msg("retry_cron: processing pending documents")

	for i := range docs {
		doc := &docs[i]

		bill, err := cfg.BillRepo.FindByID(ctx, doc.SalesBillID)
		if err != nil {
			// Bill was deleted after the document was queued — nothing to render.
			doc.Status = "error"
			errMsg := "sales bill no longer exists"
			doc.LastError = &errMsg
			doc.NextRetryAt = nil
			_ = cfg.DocumentRepo.Update(ctx, doc)
			continue
		}

		pdfName, renderErr := infra.GenerateBillPDF(bill, cfg.BusinessName, cfg.PDFStoragePath)
		if renderErr != nil {
			doc.RetryCount++
			errMsg := renderErr.Error()
			doc.LastError = &errMsg
			next := time.Now().Add(computeRetryBackoff(doc.RetryCount))
			doc.NextRetryAt = &next

			if doc.RetryCount >= MaxDocumentRetries {
				doc.Status = "error"
				doc.NextRetryAt = nil
				log.Error().
					Str("document_id", doc.ID.String()).
					Str("bill_number", bill.BillNumber).
					Int("retries", doc.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				payload := fmt.Sprintf(`{"sales_bill_id":"%s","document_id":"%s"}`, doc.SalesBillID, doc.ID)
				SendToDLQ(ctx, cfg.RDB, QueueDocument, "document", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxDocumentRetries, errMsg),
					doc.RetryCount)
			} else {
				log.Warn().
					Str("document_id", doc.ID.String()).
					Int("retry_count", doc.RetryCount).
					Time("next_retry_at", *doc.NextRetryAt).
					Msg("retry_cron: render failed, scheduled next attempt")
			}

			_ = cfg.DocumentRepo.Update(ctx, doc)
			continue
		}

		doc.Status = "generated"
		doc.PDFPath = &pdfName
		doc.NextRetryAt = nil
		doc.LastError = nil
		_ = cfg.DocumentRepo.Update(ctx, doc)

		log.Info().
			Str("pdf", pdfName).
			Str("document_id", doc.ID.String()).
			Int("total_retries", doc.RetryCount).
			Msg("retry_cron: PDF generated after retry")
	}
}
