package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("usno-dc-2024"),
		Value:     []byte("table text"),
		Topic:     "raw-sun-tables",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("usno-dc")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("usno-dc-2024"), raw.Key)
	assert.Equal(t, "table text", string(raw.Value))
	assert.Equal(t, "raw-sun-tables", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "usno-dc", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestToMessage(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("20240610"),
		Value: []byte(`{"key":"20240610"}`),
		Headers: map[string]string{
			"year":         "2024",
			"source":       "usno-dc",
			"processed_at": "2024-04-27T06:00:00Z",
		},
	}

	msg := toMessage(event)

	assert.Equal(t, []byte("20240610"), msg.Key)
	assert.JSONEq(t, `{"key":"20240610"}`, string(msg.Value))
	assert.Len(t, msg.Headers, 3)
	assert.Equal(t, "processed_at", msg.Headers[0].Key)
	assert.Equal(t, "source", msg.Headers[1].Key)
	assert.Equal(t, "year", msg.Headers[2].Key)
	assert.Equal(t, []byte("2024"), msg.Headers[2].Value)
}
