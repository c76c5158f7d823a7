package amqp

import (
	"encoding/json"
	"time"
)

const (
	KindCreated = "created"
	KindUpdated = "updated"
)

// RecordEvent is a lightweight message pointing at one position in the
// record file. Consumers fetch the record itself from the store, so the
// message never goes stale when a later update rewrites the same position.
type RecordEvent struct {
	Kind      string    `json:"kind"` // KindCreated or KindUpdated
	Index     int       `json:"index"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEvent(kind string, index int) *RecordEvent {
	return &RecordEvent{
		Kind:      kind,
		Index:     index,
		Timestamp: time.Now(),
	}
}

func (m *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var msg RecordEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
