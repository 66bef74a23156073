package domain

import "time"

// DSTWindow is the half-open interval [Start, End) during which daylight
// saving time is in effect for one year. Times are naive local wall-clock
// values carried in time.UTC.
type DSTWindow struct {
	Year  int
	Start time.Time
	End   time.Time
}

// NewDSTWindow computes the window for year: the second Sunday of March at
// 02:00 through the first Sunday of November at 02:00.
func NewDSTWindow(year int) (DSTWindow, error) {
	if year < MinSupportedYear {
		return DSTWindow{}, &UnsupportedYearError{Year: year}
	}
	// The second Sunday of March is the first Sunday on or after March 8.
	start := nextSundayOnOrAfter(time.Date(year, time.March, 8, 2, 0, 0, 0, time.UTC))
	end := nextSundayOnOrAfter(time.Date(year, time.November, 1, 2, 0, 0, 0, time.UTC))
	return DSTWindow{Year: year, Start: start, End: end}, nil
}

// Contains reports whether t falls inside [Start, End).
func (w DSTWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// AdjustToken shifts an HHMM token printed for day forward one hour when the
// resulting timestamp lies inside the window. Tokens outside the window are
// returned unchanged. The hour wraps at 24 without moving the date.
func (w DSTWindow) AdjustToken(day time.Time, token string) (string, error) {
	ts, err := combineHHMM(day, token)
	if err != nil {
		return "", err
	}
	if !w.Contains(ts) {
		return token, nil
	}
	return formatTimeToken(ts.Add(time.Hour)), nil
}

// AdjustPair applies AdjustToken to both halves of a raw pair.
func (w DSTWindow) AdjustPair(day time.Time, raw RawTimePair) (RawTimePair, error) {
	sunrise, err := w.AdjustToken(day, raw.Sunrise)
	if err != nil {
		return RawTimePair{}, err
	}
	sunset, err := w.AdjustToken(day, raw.Sunset)
	if err != nil {
		return RawTimePair{}, err
	}
	return RawTimePair{Sunrise: sunrise, Sunset: sunset}, nil
}

// mondayWeekday numbers weekdays Monday=0 through Sunday=6.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// nextSundayOnOrAfter rolls t forward (0-6 days) to a Sunday, keeping the
// time of day.
func nextSundayOnOrAfter(t time.Time) time.Time {
	return t.AddDate(0, 0, (6-mondayWeekday(t))%7)
}
