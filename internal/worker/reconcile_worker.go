package worker

// reconcile_worker.go
// Processes ledger cleanup jobs from QueueReconcile. The actual dedup logic
// lives in the sale service; the worker just drives it off the queue so a
// nightly trigger (or an explicit API call with async=true) doesn't block.

import (
	"context"
	"encoding/json"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"

	"github.com/rs/zerolog/log"
)

// ReconcileJobPayload is the job envelope sent to QueueReconcile.
type ReconcileJobPayload struct {
	SaleDate string `json:"sale_date"` // YYYY-MM-DD
}

// SaleReconciler is the slice of the sale service the worker needs.
type SaleReconciler interface {
	Reconcile(ctx context.Context, date string) (*dto.ReconcileResponse, error)
}

type ReconcileWorker struct {
	reconciler SaleReconciler
}

func NewReconcileWorker(reconciler SaleReconciler) *ReconcileWorker {
	return &ReconcileWorker{reconciler: reconciler}
}

func (w *ReconcileWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReconcileJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reconcile_worker: invalid payload")
		return
	}
	if payload.SaleDate == "" {
		log.Warn().Msg("reconcile_worker: empty sale_date, skipping")
		return
	}

	res, err := w.reconciler.Reconcile(ctx, payload.SaleDate)
	if err != nil {
		log.Error().Err(err).Str("sale_date", payload.SaleDate).Msg("reconcile_worker: reconcile failed")
		return
	}
	log.Info().Str("sale_date", payload.SaleDate).Int("deleted", res.Deleted).Msg("reconcile_worker: done")
}
