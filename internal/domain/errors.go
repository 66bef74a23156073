package domain

import (
	"errors"
	"fmt"
)

// MinSupportedYear is the first year of the U.S. daylight saving schedule
// (second Sunday of March to first Sunday of November) that DSTWindow implements.
const MinSupportedYear = 2007

// FormatError reports a table that does not follow the fixed-width layout:
// a missing publication year or a month block that does not hold exactly two
// time tokens.
type FormatError struct {
	Line    int    // zero-based line index in the source document
	Date    string // YYYYMMDD of the date being decoded, empty for header errors
	Message string
}

func (e *FormatError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("format error at line %d (%s): %s", e.Line, e.Date, e.Message)
	}
	return fmt.Sprintf("format error at line %d: %s", e.Line, e.Message)
}

// UnsupportedYearError reports a publication year that predates the DST rule.
type UnsupportedYearError struct {
	Year int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("year %d not supported: DST rules before %d are not implemented", e.Year, MinSupportedYear)
}

// MalformedTimeTokenError reports a time token that is not a valid HHMM value.
type MalformedTimeTokenError struct {
	Token  string
	Reason string
}

func (e *MalformedTimeTokenError) Error() string {
	return fmt.Sprintf("malformed time token %q: %s", e.Token, e.Reason)
}

// ErrorKind classifies a parse error for callers that report it over a wire,
// e.g. the HTTP adapter. Unknown errors map to "internal".
func ErrorKind(err error) string {
	var formatErr *FormatError
	var yearErr *UnsupportedYearError
	var tokenErr *MalformedTimeTokenError
	switch {
	case errors.As(err, &formatErr):
		return "format_error"
	case errors.As(err, &yearErr):
		return "unsupported_year"
	case errors.As(err, &tokenErr):
		return "malformed_time_token"
	default:
		return "internal"
	}
}
