package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSunTimes(t *testing.T) {
	fixedTime := time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	t.Cleanup(func() { SetClock(nil) })

	entry := ResultEntry{
		Key:     "20240610",
		Date:    time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Sunrise: "0545",
		Sunset:  "2118",
	}

	out, err := SerializeSunTimes(NewSunTimesRecord(entry, "usno-dc"))
	require.NoError(t, err)

	assert.Equal(t, []byte("20240610"), out.Key)
	assert.Equal(t, "2024", out.Headers["year"])
	assert.Equal(t, "usno-dc", out.Headers["source"])
	assert.Equal(t, "2024-04-27T06:00:00Z", out.Headers["processed_at"])

	var rec SunTimesRecord
	require.NoError(t, json.Unmarshal(out.Value, &rec))
	assert.Equal(t, "2024-06-10", rec.Date)
	assert.Equal(t, "0545", rec.Sunrise)
	assert.Equal(t, "2118", rec.Sunset)
	assert.Equal(t, fixedTime, rec.ProcessedAt)
}

func TestSerializeResultSet(t *testing.T) {
	rs, err := ParseTable(renderWith(2023, nil))
	require.NoError(t, err)

	events, err := SerializeResultSet(rs, "test")
	require.NoError(t, err)
	require.Len(t, events, 365)
	assert.Equal(t, []byte("20230101"), events[0].Key)
	assert.Equal(t, []byte("20231231"), events[364].Key)
}

func TestResultSet_EntriesIsACopy(t *testing.T) {
	rs, err := ParseTable(renderWith(2023, nil))
	require.NoError(t, err)

	entries := rs.Entries()
	entries[0].Sunrise = "9999"

	first, ok := rs.Get("20230101")
	require.True(t, ok)
	assert.Equal(t, "0600", first.Sunrise)
	assert.Equal(t, "20230101", rs.Keys()[0])
}
