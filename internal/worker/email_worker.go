package worker

// email_worker.go
// Processes email jobs from QueueEmail: sends the bill PDF to the customer
// via SMTP, through the circuit breaker so a downed relay fast-fails instead
// of tying up pool workers.

import (
	"context"
	"encoding/json"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/infra"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	DocumentID string `json:"document_id"`
	ToEmail    string `json:"to_email"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	PDFPath    string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer  *infra.Mailer
	cb      *infra.CircuitBreaker
	docRepo repository.DocumentRepository
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, docRepo repository.DocumentRepository) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, docRepo: docRepo}
}

// Process sends the bill PDF as an attachment and records the recipient on
// the document row.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return
	}

	sendErr := w.cb.Execute(func() error {
		return w.mailer.SendBill(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}

	if docID, err := uuid.Parse(payload.DocumentID); err == nil {
		if doc, err := w.docRepo.FindByID(ctx, docID); err == nil {
			doc.EmailedTo = &payload.ToEmail
			_ = w.docRepo.Update(ctx, doc)
		}
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: bill sent successfully")
}
