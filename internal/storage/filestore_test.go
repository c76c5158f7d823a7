package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendwatch/internal/core"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "records.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	records, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty sequence, got %d records", len(records))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := []core.Record{
		{Name: "coffee maker", Amount: 89.99, Category: "kitchen", UsageFrequency: "daily", UsageMinutes: 10, CreatedAt: "2025-08-01"},
		{Name: "gym pass", Amount: 35.50, Category: "health", UsageFrequency: "weekly", UsageMinutes: 90, CreatedAt: "2025-08-03"},
		{Name: "free app", Amount: 0, Category: "software", UsageFrequency: "", UsageMinutes: 0, CreatedAt: "2025-08-05"},
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d changed in round trip: %+v != %+v", i, got[i], want[i])
		}
	}

	// the persisted form keeps field names verbatim and numbers as numbers
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	for _, want := range []string{`"usage_frequency"`, `"usage_minutes"`, `"created_at"`, `89.99`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("persisted payload missing %s:\n%s", want, data)
		}
	}
}

func TestLoadCorruptState(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"not an array", `{"name":"x"}`},
		{"wrong field type", `[{"name":"x","amount":"ten","category":"c","usage_frequency":"daily","usage_minutes":5,"created_at":"2025-08-01"}]`},
		{"missing required field", `[{"name":"x","amount":1,"category":"c","usage_minutes":5,"created_at":"2025-08-01"}]`},
	}
	for _, tc := range cases {
		s := newTestStore(t)
		if err := os.WriteFile(s.Path(), []byte(tc.payload), 0644); err != nil {
			t.Fatalf("%s: seed file: %v", tc.name, err)
		}
		if _, err := s.Load(); !errors.Is(err, ErrCorruptState) {
			t.Fatalf("%s: expected ErrCorruptState, got %v", tc.name, err)
		}
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save([]core.Record{{Name: "x", Category: "c"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "records.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestAppendIsPure(t *testing.T) {
	orig := []core.Record{{Name: "a"}, {Name: "b"}}
	out := Append(orig, core.Record{Name: "c"})
	if len(out) != 3 || out[2].Name != "c" {
		t.Fatalf("append result wrong: %+v", out)
	}
	if len(orig) != 2 {
		t.Fatalf("input sequence mutated: %+v", orig)
	}
}

func TestUpdateAt(t *testing.T) {
	records := []core.Record{
		{Name: "a", UsageFrequency: "daily", UsageMinutes: 10},
		{Name: "b", UsageFrequency: "weekly", UsageMinutes: 20},
	}

	freq := "monthly"
	minutes := 45
	out, err := UpdateAt(records, 1, UsagePatch{Frequency: &freq, Minutes: &minutes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out[1].UsageFrequency != "monthly" || out[1].UsageMinutes != 45 {
		t.Fatalf("patch not applied: %+v", out[1])
	}
	if out[1].Name != "b" || out[0] != records[0] {
		t.Fatalf("untouched fields changed: %+v", out)
	}
	if records[1].UsageMinutes != 20 {
		t.Fatalf("input sequence mutated: %+v", records[1])
	}

	// nil patch fields leave the record alone
	out, err = UpdateAt(records, 0, UsagePatch{Minutes: &minutes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out[0].UsageFrequency != "daily" || out[0].UsageMinutes != 45 {
		t.Fatalf("partial patch wrong: %+v", out[0])
	}
}

func TestUpdateAtOutOfRange(t *testing.T) {
	records := []core.Record{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	minutes := 10
	for _, index := range []int{-1, 3, 5} {
		if _, err := UpdateAt(records, index, UsagePatch{Minutes: &minutes}); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

func TestUpdateAtRejectsNegativeMinutes(t *testing.T) {
	records := []core.Record{{Name: "a", UsageMinutes: 5}}
	minutes := -1
	if _, err := UpdateAt(records, 0, UsagePatch{Minutes: &minutes}); !errors.Is(err, core.ErrNegativeMinutes) {
		t.Fatalf("expected ErrNegativeMinutes, got %v", err)
	}
}
