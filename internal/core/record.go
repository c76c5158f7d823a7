package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-day form every record carries in created_at.
const DateLayout = "2006-01-02"

// Record is one spending/usage event. Field names mirror the persisted
// JSON exactly; records have no id and are addressed by their position
// in the stored sequence.
type Record struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Category       string  `json:"category"`
	UsageFrequency string  `json:"usage_frequency"`
	UsageMinutes   int     `json:"usage_minutes"`
	CreatedAt      string  `json:"created_at"`
}

var (
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyCategory   = errors.New("empty category")
	ErrNegativeAmount  = errors.New("negative amount")
	ErrNegativeMinutes = errors.New("negative minutes")
	ErrBadDate         = errors.New("date must be YYYY-MM-DD")
)

// Validate checks the invariants enforced at validated entry points.
// A well-formed created_at is required here; aggregation is more lenient
// with dates that were already persisted (see DatePolicy).
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.Amount < 0 {
		return ErrNegativeAmount
	}
	if r.UsageMinutes < 0 {
		return ErrNegativeMinutes
	}
	if r.CreatedAt != "" {
		if _, err := time.Parse(DateLayout, r.CreatedAt); err != nil {
			return ErrBadDate
		}
	}
	return nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DatePolicy decides which calendar day a raw created_at value counts as,
// given the reference day of the computation.
type DatePolicy func(raw string, today time.Time) time.Time

// FallbackToToday parses raw as YYYY-MM-DD and substitutes the reference
// day when parsing fails. This keeps records with damaged dates visible in
// the current views instead of dropping them; it also means such a record
// can never be excluded from the current month.
func FallbackToToday(raw string, today time.Time) time.Time {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Day(today)
	}
	return Day(d)
}
