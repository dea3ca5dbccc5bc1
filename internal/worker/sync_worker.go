// Package worker mirrors recorded transactions from SQLite to the sheet
// backend. Normal flow is event-driven via AMQP; a periodic sweep catches
// rows whose event was lost while the worker was down.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kasbot/internal/events"
	"kasbot/internal/sheets"
	"kasbot/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.TransactionWriter
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, writer sheets.TransactionWriter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes one transaction-recorded message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *events.TransactionRecordedMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)
	return w.syncTransaction(ctx, msg.ID)
}

func (w *SyncWorker) syncTransaction(ctx context.Context, id int64) error {
	tx, err := w.storage.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.writer.Append(ctx, tx)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append transaction to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction mirrored", "id", id, "sheets_ref", ref)
	return nil
}

// SweepPending mirrors up to batchSize rows still marked pending. Returns
// how many rows were attempted.
func (w *SyncWorker) SweepPending(ctx context.Context) (int, error) {
	pending, err := w.storage.PendingSync(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending transactions: %w", err)
	}

	for _, p := range pending {
		if err := w.syncTransaction(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror pending transaction",
				"id", p.ID, "error", err)
		}
	}

	return len(pending), nil
}

// StartupSyncCheck drains everything pending at startup, batch by batch.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	for {
		n, err := w.SweepPending(ctx)
		if err != nil {
			return err
		}
		if n < w.batchSize {
			return nil
		}
	}
}

// RunPeriodicSweep sweeps on the given interval until ctx is cancelled.
func (w *SyncWorker) RunPeriodicSweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.SweepPending(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic sweep failed", "error", err)
			}
		}
	}
}
