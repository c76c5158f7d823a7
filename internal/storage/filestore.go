package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"spendwatch/internal/core"
)

var (
	// ErrCorruptState marks a persisted payload that no longer matches the
	// record shape. It is surfaced, never repaired.
	ErrCorruptState = errors.New("corrupt record state")

	// ErrIndexOutOfRange marks an update aimed outside the stored sequence.
	ErrIndexOutOfRange = errors.New("record index out of range")
)

// requiredFields are the keys every persisted record object must carry.
var requiredFields = []string{
	"name", "amount", "category", "usage_frequency", "usage_minutes", "created_at",
}

// FileStore persists the full record sequence as one human-readable JSON
// array. Load and Save always move the whole sequence; there is no partial
// write. Saves go through a temp file and rename so a crashed writer never
// leaves a half-written state behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the full record sequence in insertion order. A missing file is
// an empty store, not an error.
func (s *FileStore) Load() ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []core.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}
	return decodeRecords(data)
}

// Save overwrites the persisted state with the given sequence.
func (s *FileStore) Save(records []core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []core.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".records-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}

// decodeRecords checks the payload against the expected shape before
// decoding: every element must be an object carrying all record fields with
// compatible types. Anything else is corrupt state.
func decodeRecords(data []byte) ([]core.Record, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	records := make([]core.Record, len(raw))
	for i, obj := range raw {
		for _, field := range requiredFields {
			if _, ok := obj[field]; !ok {
				return nil, fmt.Errorf("%w: record %d missing field %q", ErrCorruptState, i, field)
			}
		}
		item, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptState, i, err)
		}
		if err := json.Unmarshal(item, &records[i]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptState, i, err)
		}
	}
	return records, nil
}

// Append returns a new sequence with r added; the input slice is left alone.
func Append(records []core.Record, r core.Record) []core.Record {
	out := make([]core.Record, 0, len(records)+1)
	out = append(out, records...)
	return append(out, r)
}

// UsagePatch is the mutable part of a stored record: its frequency label
// and usage duration. Nil fields are left untouched.
type UsagePatch struct {
	Frequency *string
	Minutes   *int
}

// UpdateAt applies patch to the record at index and returns the sequence to
// persist. The input slice is not modified.
func UpdateAt(records []core.Record, index int, patch UsagePatch) ([]core.Record, error) {
	if index < 0 || index >= len(records) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(records))
	}
	out := make([]core.Record, len(records))
	copy(out, records)
	if patch.Frequency != nil {
		out[index].UsageFrequency = *patch.Frequency
	}
	if patch.Minutes != nil {
		if *patch.Minutes < 0 {
			return nil, core.ErrNegativeMinutes
		}
		out[index].UsageMinutes = *patch.Minutes
	}
	return out, nil
}
