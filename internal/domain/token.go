package domain

import (
	"strconv"
	"time"
)

// hhmmLayout renders a time as a 4-digit zero-padded HHMM token.
const hhmmLayout = "1504"

// parseTimeToken decodes a 4-digit HHMM token (e.g. "0716" → 07:16).
func parseTimeToken(token string) (hour, minute int, err error) {
	if len(token) != 4 {
		return 0, 0, &MalformedTimeTokenError{Token: token, Reason: "want exactly 4 digits"}
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, 0, &MalformedTimeTokenError{Token: token, Reason: "non-numeric character"}
		}
	}

	hour, _ = strconv.Atoi(token[:2])
	minute, _ = strconv.Atoi(token[2:])
	if hour > 23 {
		return 0, 0, &MalformedTimeTokenError{Token: token, Reason: "hour out of range 00-23"}
	}
	if minute > 59 {
		return 0, 0, &MalformedTimeTokenError{Token: token, Reason: "minute out of range 00-59"}
	}
	return hour, minute, nil
}

// combineHHMM places an HHMM token on the calendar date of day.
func combineHHMM(day time.Time, token string) (time.Time, error) {
	hour, minute, err := parseTimeToken(token)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC), nil
}

func formatTimeToken(t time.Time) string {
	return t.Format(hhmmLayout)
}
