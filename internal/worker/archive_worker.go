package worker

import (
	"context"
	"fmt"
	"log/slog"

	"spendwatch/internal/amqp"
	"spendwatch/internal/core"
)

// RecordLoader reads the current record sequence from the store.
type RecordLoader interface {
	Load() ([]core.Record, error)
}

// RecordArchiver persists one record snapshot keyed by store position.
type RecordArchiver interface {
	Upsert(ctx context.Context, position int, r core.Record) error
}

// ArchiveWorker mirrors record events into the SQLite archive. Each event
// carries only a position; the worker reloads the store and archives
// whatever currently sits there, so replayed or reordered events converge
// on the latest state.
type ArchiveWorker struct {
	store   RecordLoader
	archive RecordArchiver
}

func NewArchiveWorker(store RecordLoader, archive RecordArchiver) *ArchiveWorker {
	return &ArchiveWorker{
		store:   store,
		archive: archive,
	}
}

// HandleEvent processes a single record event.
func (w *ArchiveWorker) HandleEvent(ctx context.Context, msg *amqp.RecordEvent) error {
	slog.InfoContext(ctx, "Processing record event",
		"kind", msg.Kind,
		"index", msg.Index)

	records, err := w.store.Load()
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if msg.Index < 0 || msg.Index >= len(records) {
		// events are published after the save, so the position should
		// exist; requeueing gives a lagging reader time to catch up
		return fmt.Errorf("record %d not in store of %d", msg.Index, len(records))
	}

	if err := w.archive.Upsert(ctx, msg.Index, records[msg.Index]); err != nil {
		return fmt.Errorf("archive record: %w", err)
	}
	return nil
}

// Run consumes record events until ctx is done, reconnecting to the broker
// when the connection drops.
func (w *ArchiveWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeWithReconnect(ctx, func(msg *amqp.RecordEvent) error {
		return w.HandleEvent(ctx, msg)
	})
}
