package domain

import "time"

// DateKeyLayout formats a calendar date as an 8-digit YYYYMMDD key.
const DateKeyLayout = "20060102"

// RawTimePair holds the sunrise and sunset tokens for one date, either as
// printed in the table or after DST normalization.
type RawTimePair struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// ResultEntry is one decoded and normalized day.
type ResultEntry struct {
	Key     string    `json:"key"`
	Date    time.Time `json:"date"`
	Sunrise string    `json:"sunrise"`
	Sunset  string    `json:"sunset"`
}

// ResultSet is the ordered mapping from date key to adjusted times for a
// whole year. It is immutable once returned by ParseTable.
type ResultSet struct {
	year    int
	entries []ResultEntry
	index   map[string]int
}

func newResultSet(year, capacity int) *ResultSet {
	return &ResultSet{
		year:    year,
		entries: make([]ResultEntry, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

func (r *ResultSet) add(day time.Time, pair RawTimePair) {
	key := DateKey(day)
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, ResultEntry{
		Key:     key,
		Date:    day,
		Sunrise: pair.Sunrise,
		Sunset:  pair.Sunset,
	})
}

// Year returns the publication year the set was built for.
func (r *ResultSet) Year() int { return r.year }

// Len returns the number of days in the set.
func (r *ResultSet) Len() int { return len(r.entries) }

// Get looks up a day by its YYYYMMDD key.
func (r *ResultSet) Get(key string) (ResultEntry, bool) {
	i, ok := r.index[key]
	if !ok {
		return ResultEntry{}, false
	}
	return r.entries[i], true
}

// Entries returns a copy of all days in chronological order.
func (r *ResultSet) Entries() []ResultEntry {
	out := make([]ResultEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Keys returns the date keys in chronological order.
func (r *ResultSet) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// DateKey formats day as YYYYMMDD.
func DateKey(day time.Time) string {
	return day.Format(DateKeyLayout)
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}
