package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_Layout(t *testing.T) {
	lines := RenderTable(testPlace, 2023, func(time.Time) RawTimePair {
		return RawTimePair{Sunrise: "0600", Sunset: "1800"}
	})

	require.Len(t, lines, headerLines+31+2)
	assert.Regexp(t, yearRe, lines[yearLine])
	assert.Equal(t, "01  0600 1800  0600 1800", lines[headerLines][:24])
	assert.Len(t, lines[headerLines], tableWidth)

	// Feb 29-31 and Apr 31 are blank in 2023.
	row29 := lines[headerLines+28]
	assert.Equal(t, "         ", monthBlock(row29, time.February))
	assert.Equal(t, "0600 1800", monthBlock(row29, time.March))
	row31 := lines[headerLines+30]
	assert.Equal(t, "         ", monthBlock(row31, time.April))
	assert.Equal(t, "0600 1800", monthBlock(row31, time.December))
}

func TestRenderTable_RoundTrip(t *testing.T) {
	lookup := func(day time.Time) RawTimePair {
		// Distinct value per date so misplaced columns are caught.
		return RawTimePair{
			Sunrise: day.Format("01") + day.Format("02"),
			Sunset:  "1" + day.Format("01")[1:] + day.Format("02"),
		}
	}
	rs, err := ParseTable(RenderTable(testPlace, 2023, lookup))
	require.NoError(t, err)

	jan5, _ := rs.Get("20230105")
	assert.Equal(t, "0105", jan5.Sunrise)
	assert.Equal(t, "1105", jan5.Sunset)

	dec31, _ := rs.Get("20231231")
	assert.Equal(t, "1231", dec31.Sunrise)
	assert.Equal(t, "1231", dec31.Sunset)
}
