package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// headerLines is the number of leading lines that precede the day rows.
	headerLines = 9
	// yearLine is the header line carrying "... for YYYY ...".
	yearLine = 1
	// dayLabelWidth is the width of the "01  " label in front of every row.
	dayLabelWidth = 4
	// monthBlockWidth is the stride between month columns in a row.
	monthBlockWidth = 11
	// monthBlockUsed is the part of a month block holding "HHMM HHMM".
	monthBlockUsed = 9
)

// yearRe matches the publication year in the title line, e.g.
// "Rise and Set for the Sun for 2024" -> "2024".
var yearRe = regexp.MustCompile(`for\s(\d{4})`)

// SplitLines breaks raw table text into the line sequence ParseTable expects.
// Both LF and CRLF line endings are accepted.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// ParseTable decodes every calendar date of the table's publication year and
// normalizes its sunrise/sunset tokens to local clock time. It fails on the
// first error; no partial result is returned.
func ParseTable(lines []string) (*ResultSet, error) {
	year, err := extractYear(lines)
	if err != nil {
		return nil, err
	}

	window, err := NewDSTWindow(year)
	if err != nil {
		return nil, err
	}

	var rows []string
	if len(lines) > headerLines {
		rows = lines[headerLines:]
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	result := newResultSet(year, daysInYear(year))
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		raw, err := decodeDay(rows, day)
		if err != nil {
			return nil, err
		}
		adjusted, err := window.AdjustPair(day, raw)
		if err != nil {
			return nil, err
		}
		result.add(day, adjusted)
	}
	return result, nil
}

// extractYear finds the publication year on the title line.
func extractYear(lines []string) (int, error) {
	if len(lines) <= yearLine {
		return 0, &FormatError{Line: yearLine, Message: "document too short to hold a title line"}
	}
	m := yearRe.FindStringSubmatch(lines[yearLine])
	if m == nil {
		return 0, &FormatError{Line: yearLine, Message: `unable to find "for YYYY" in title line`}
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &FormatError{Line: yearLine, Message: "invalid year " + m[1]}
	}
	return year, nil
}

// decodeDay extracts the raw pair for day. rows is the post-header sequence;
// row day-1 holds the values for that day-of-month in every month.
func decodeDay(rows []string, day time.Time) (RawTimePair, error) {
	idx := day.Day() - 1
	line := headerLines + idx
	key := DateKey(day)
	if idx >= len(rows) {
		return RawTimePair{}, &FormatError{Line: line, Date: key, Message: "missing data row"}
	}

	block := monthBlock(rows[idx], day.Month())
	fields := strings.Fields(block)
	if len(fields) != 2 {
		return RawTimePair{}, &FormatError{
			Line:    line,
			Date:    key,
			Message: "month block " + strconv.Quote(block) + " does not hold two time tokens",
		}
	}
	return RawTimePair{Sunrise: fields[0], Sunset: fields[1]}, nil
}

// monthBlock slices the used part of a month's block out of a row, clamping
// to the row length so short rows yield short (or empty) blocks.
func monthBlock(row string, month time.Month) string {
	data := sliceClamped(row, dayLabelWidth, len(row))
	start := monthBlockWidth * (int(month) - 1)
	return sliceClamped(data, start, start+monthBlockUsed)
}

func sliceClamped(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
