package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawEvent represents an unprocessed message from the source topic. Value
// holds the full text of one USNO table.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// SunTimesRecord is the serialized form of one normalized day.
type SunTimesRecord struct {
	Key         string    `json:"key"`  // YYYYMMDD
	Date        string    `json:"date"` // YYYY-MM-DD
	Sunrise     string    `json:"sunrise"`
	Sunset      string    `json:"sunset"`
	Source      string    `json:"source,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// NewSunTimesRecord builds the record for one entry, stamped with the package clock.
func NewSunTimesRecord(entry ResultEntry, source string) SunTimesRecord {
	return SunTimesRecord{
		Key:         entry.Key,
		Date:        entry.Date.Format(time.DateOnly),
		Sunrise:     entry.Sunrise,
		Sunset:      entry.Sunset,
		Source:      source,
		ProcessedAt: clock.Now().UTC(),
	}
}

// SerializeSunTimes marshals a record into an OutputEvent keyed by its date.
func SerializeSunTimes(rec SunTimesRecord) (OutputEvent, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize sun times: %w", err)
	}
	var year string
	if len(rec.Key) == len(DateKeyLayout) {
		year = rec.Key[:4]
	}
	return OutputEvent{
		Key:   []byte(rec.Key),
		Value: data,
		Headers: map[string]string{
			"year":         year,
			"source":       rec.Source,
			"processed_at": rec.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// SerializeResultSet converts every day of a parsed table into output events,
// in chronological order.
func SerializeResultSet(rs *ResultSet, source string) ([]OutputEvent, error) {
	out := make([]OutputEvent, 0, rs.Len())
	for _, entry := range rs.Entries() {
		ev, err := SerializeSunTimes(NewSunTimesRecord(entry, source))
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", entry.Key, err)
		}
		out = append(out, ev)
	}
	return out, nil
}
