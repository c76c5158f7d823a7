package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"spendwatch/internal/amqp"
	"spendwatch/internal/core"
	"spendwatch/internal/storage"
)

// EventPublisher announces record changes to interested consumers (the
// archive worker). A nil publisher disables events.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, kind string, index int) error
}

// RecordService is the single entry point presentation layers use. Every
// mutation runs the full load-mutate-save cycle under one mutex, so two
// concurrent requests cannot lose each other's write.
type RecordService struct {
	mu     sync.Mutex
	store  *storage.FileStore
	events EventPublisher
	now    func() time.Time
}

func NewRecordService(store *storage.FileStore, events EventPublisher) *RecordService {
	return &RecordService{
		store:  store,
		events: events,
		now:    time.Now,
	}
}

// CreateInput carries the fields a form or CLI command supplies for a new
// record. Date is optional and defaults to today; an empty frequency is
// stored as "unspecified", matching the original entry form.
type CreateInput struct {
	Name      string
	Amount    float64
	Category  string
	Frequency string
	Minutes   int
	Date      string
}

// CreateRecord validates input, appends the record and persists the store.
// Validation failures surface before any mutation, so the persisted state
// is never partially written.
func (s *RecordService) CreateRecord(ctx context.Context, in CreateInput) (core.Record, error) {
	record := core.Record{
		Name:           in.Name,
		Amount:         in.Amount,
		Category:       in.Category,
		UsageFrequency: in.Frequency,
		UsageMinutes:   in.Minutes,
		CreatedAt:      in.Date,
	}
	if record.UsageFrequency == "" {
		record.UsageFrequency = "unspecified"
	}
	if err := record.Validate(); err != nil {
		return core.Record{}, err
	}
	if record.CreatedAt == "" {
		record.CreatedAt = core.Day(s.now()).Format(core.DateLayout)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return core.Record{}, fmt.Errorf("load records: %w", err)
	}
	records = storage.Append(records, record)
	if err := s.store.Save(records); err != nil {
		return core.Record{}, fmt.Errorf("save records: %w", err)
	}

	s.publishEvent(ctx, amqp.KindCreated, len(records)-1)
	return record, nil
}

// ListRecords returns the full sequence in insertion order.
func (s *RecordService) ListRecords(ctx context.Context) ([]core.Record, error) {
	return s.store.Load()
}

// FrequencySummary groups all records by their frequency label.
func (s *RecordService) FrequencySummary(ctx context.Context) ([]core.FrequencyGroup, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return core.SummarizeByFrequency(records), nil
}

// DailyBarChart returns the trailing 7-day usage chart ending at reference.
func (s *RecordService) DailyBarChart(ctx context.Context, reference time.Time) ([]core.DayUsage, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return core.DailyUsage(records, reference, core.WindowDays, core.BarWidth), nil
}

// Dashboard builds the month-to-date view for today.
func (s *RecordService) Dashboard(ctx context.Context, today time.Time) (core.Dashboard, error) {
	records, err := s.store.Load()
	if err != nil {
		return core.Dashboard{}, err
	}
	return core.BuildDashboard(records, today, core.FallbackToToday), nil
}

// UpdateUsage patches frequency and/or minutes of the record at index and
// persists the store. An out-of-range index leaves the persisted state
// untouched.
func (s *RecordService) UpdateUsage(ctx context.Context, index int, patch storage.UsagePatch) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return core.Record{}, fmt.Errorf("load records: %w", err)
	}
	updated, err := storage.UpdateAt(records, index, patch)
	if err != nil {
		return core.Record{}, err
	}
	if err := s.store.Save(updated); err != nil {
		return core.Record{}, fmt.Errorf("save records: %w", err)
	}

	s.publishEvent(ctx, amqp.KindUpdated, index)
	return updated[index], nil
}

// publishEvent is best effort: the record is already saved, so a publish
// failure is logged and the request still succeeds.
func (s *RecordService) publishEvent(ctx context.Context, kind string, index int) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordEvent(ctx, kind, index); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"kind", kind,
			"index", index,
			"error", err)
	}
}
