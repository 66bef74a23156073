// Command validate parses a USNO table and runs integrity checks over the
// normalized result: every date of the year present, keys in chronological
// order, well-formed times, and a one-hour jump on both daylight saving
// boundaries.
//
// Usage:
//
//	go run ./cmd/validate -table internal/domain/testdata/usno_san_francisco_2012.txt
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
)

// boundaryTolerance is how far a day-over-day change may drift from exactly
// one hour on a DST boundary; real sunrise moves by up to ~2 minutes a day.
const boundaryTolerance = 5 * time.Minute

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	table := flag.String("table", "", "path to a USNO sunrise/sunset table")
	flag.Parse()

	if *table == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *table))
}

func run(out io.Writer, path string) int {
	fmt.Fprintln(out, "=== Sun Table Integrity Validation ===")
	fmt.Fprintln(out)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "FATAL: read table: %v\n", err)
		return 1
	}
	rs, err := domain.ParseTable(domain.SplitLines(string(data)))
	if err != nil {
		fmt.Fprintf(out, "FATAL: parse table (%s): %v\n", domain.ErrorKind(err), err)
		return 1
	}

	phases := []*phase{
		validateCompleteness(rs),
		validateKeyOrder(rs),
		validateTimes(rs),
		validateDSTBoundaries(rs),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Year %d: %d days\n", rs.Year(), rs.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateCompleteness(rs *domain.ResultSet) *phase {
	p := &phase{name: "Phase 1: Completeness"}

	want := time.Date(rs.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(rs.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24
	if rs.Len() != int(want) {
		p.errorf("expected %d days, got %d", int(want), rs.Len())
	}

	for day := time.Date(rs.Year(), time.January, 1, 0, 0, 0, 0, time.UTC); day.Year() == rs.Year(); day = day.AddDate(0, 0, 1) {
		if _, ok := rs.Get(domain.DateKey(day)); !ok {
			p.errorf("missing %s", domain.DateKey(day))
		}
	}
	return p
}

func validateKeyOrder(rs *domain.ResultSet) *phase {
	p := &phase{name: "Phase 2: Key format and order"}

	prev := ""
	for _, e := range rs.Entries() {
		day, err := domain.ParseDateKey(e.Key)
		if err != nil {
			p.errorf("%s: %v", e.Key, err)
			continue
		}
		if !day.Equal(e.Date) {
			p.errorf("%s: key does not match date %s", e.Key, e.Date.Format(time.DateOnly))
		}
		if e.Key <= prev {
			p.errorf("%s: not after %s", e.Key, prev)
		}
		prev = e.Key
	}
	return p
}

func validateTimes(rs *domain.ResultSet) *phase {
	p := &phase{name: "Phase 3: Time tokens"}

	for _, e := range rs.Entries() {
		rise, err1 := time.Parse("1504", e.Sunrise)
		set, err2 := time.Parse("1504", e.Sunset)
		if err1 != nil || err2 != nil {
			p.errorf("%s: malformed times %q / %q", e.Key, e.Sunrise, e.Sunset)
			continue
		}
		if !rise.Before(set) {
			p.errorf("%s: sunrise %s not before sunset %s", e.Key, e.Sunrise, e.Sunset)
		}
	}
	return p
}

func validateDSTBoundaries(rs *domain.ResultSet) *phase {
	p := &phase{name: "Phase 4: Daylight saving boundaries"}

	window, err := domain.NewDSTWindow(rs.Year())
	if err != nil {
		p.errorf("%v", err)
		return p
	}

	checkJump(p, rs, window.Start, time.Hour)
	checkJump(p, rs, window.End, -time.Hour)
	return p
}

// checkJump expects sunrise and sunset on boundary to differ from the day
// before by about want.
func checkJump(p *phase, rs *domain.ResultSet, boundary time.Time, want time.Duration) {
	day := time.Date(boundary.Year(), boundary.Month(), boundary.Day(), 0, 0, 0, 0, time.UTC)
	before, ok1 := rs.Get(domain.DateKey(day.AddDate(0, 0, -1)))
	on, ok2 := rs.Get(domain.DateKey(day))
	if !ok1 || !ok2 {
		p.errorf("%s: boundary days missing", domain.DateKey(day))
		return
	}

	for _, pair := range [][3]string{
		{"sunrise", before.Sunrise, on.Sunrise},
		{"sunset", before.Sunset, on.Sunset},
	} {
		a, err1 := time.Parse("1504", pair[1])
		b, err2 := time.Parse("1504", pair[2])
		if err1 != nil || err2 != nil {
			p.errorf("%s %s: malformed time", on.Key, pair[0])
			continue
		}
		if diff := b.Sub(a) - want; diff > boundaryTolerance || diff < -boundaryTolerance {
			p.errorf("%s %s: %s -> %s, expected a %s shift", on.Key, pair[0], pair[1], pair[2], want)
		}
	}
}
