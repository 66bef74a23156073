package domain

import (
	"fmt"
	"strings"
	"time"
)

const tableWidth = dayLabelWidth + 12*monthBlockWidth - 2

// RenderTable lays out a year of raw (standard time) pairs in the fixed-width
// USNO format that ParseTable reads. lookup is called once per calendar date;
// dates that do not exist are left blank, as the published tables do.
func RenderTable(place string, year int, lookup func(day time.Time) RawTimePair) []string {
	lines := make([]string, 0, headerLines+31+2)
	lines = append(lines,
		center(place, tableWidth),
		fmt.Sprintf("%-51s%-52s%s", "Location: synthetic", fmt.Sprintf("Rise and Set for the Sun for %d", year), "U. S. Naval Observatory"),
		"",
		center("Eastern Standard Time", tableWidth),
		"",
		"",
		"       Jan.       Feb.       Mar.       Apr.       May        June       July       Aug.       Sept.      Oct.       Nov.       Dec.",
		"Day"+strings.Repeat(" Rise  Set ", 12)[:tableWidth-3],
		"   "+strings.Repeat("  h m  h m ", 12)[:tableWidth-3],
	)

	var b strings.Builder
	for day := 1; day <= 31; day++ {
		b.Reset()
		fmt.Fprintf(&b, "%02d  ", day)
		for month := time.January; month <= time.December; month++ {
			if day > daysInMonth(year, month) {
				b.WriteString(strings.Repeat(" ", monthBlockWidth))
				continue
			}
			pair := lookup(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
			fmt.Fprintf(&b, "%-4s %-4s  ", pair.Sunrise, pair.Sunset)
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	lines = append(lines, "", center("Add one hour for daylight time, if and when in use.", tableWidth))
	return lines
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}
