// Package ledger orchestrates the cash book: durable writes go to SQLite
// first, then a transaction-recorded event is published for the mirror
// worker. Publishing is best-effort; the local write is the source of
// truth.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"kasbot/internal/core"
	"kasbot/internal/storage"
)

// Publisher emits transaction-recorded events. *events.Client implements
// it; a nil Publisher disables mirroring.
type Publisher interface {
	PublishTransactionRecorded(ctx context.Context, id int64) error
}

type Service struct {
	storage   *storage.SQLiteRepository
	publisher Publisher
}

func NewService(storage *storage.SQLiteRepository, publisher Publisher) *Service {
	return &Service{
		storage:   storage,
		publisher: publisher,
	}
}

// Record saves a transaction locally and publishes a sync event.
func (s *Service) Record(ctx context.Context, kind core.Kind, amount int64, note string) (int64, error) {
	id, err := s.storage.Record(ctx, kind, amount, note)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	if s.publisher == nil {
		return id, nil
	}
	if err := s.publisher.PublishTransactionRecorded(ctx, id); err != nil {
		// The transaction is durable locally; the worker's startup sweep
		// picks up rows whose event was lost.
		slog.ErrorContext(ctx, "Failed to publish transaction recorded event",
			"id", id, "error", err)
	}

	return id, nil
}

// Balance returns the current signed sum over all transactions.
func (s *Service) Balance(ctx context.Context) (int64, error) {
	return s.storage.Balance(ctx)
}

// History returns all transactions in recording order.
func (s *Service) History(ctx context.Context) ([]core.Transaction, error) {
	return s.storage.History(ctx)
}

func (s *Service) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("close storage: %w", err)
		}
	}
	return nil
}
