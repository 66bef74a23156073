// Command genmock synthesizes a USNO-format sunrise/sunset table for any
// location and year. Times are computed with suncalc in Eastern Standard
// Time, exactly as the published tables present them, so the output feeds
// straight into the parser, the pipeline and its tests.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -lat 38.8951 -lon -77.0364 -year 2024 \
//	  -place "WASHINGTON, DC" \
//	  -out data/mock/usno_washington_2024.txt
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
	"github.com/sixdouglas/suncalc"
)

// eastern is the fixed UTC-5 zone the tables are published in.
var eastern = time.FixedZone("EST", -5*60*60)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	lat := flag.Float64("lat", 38.8951, "latitude in decimal degrees")
	lon := flag.Float64("lon", -77.0364, "longitude in decimal degrees")
	year := flag.Int("year", time.Now().Year(), "table year")
	place := flag.String("place", "", "place name for the title line")
	out := flag.String("out", "", "output path (default: stdout)")
	flag.Parse()

	if *year < domain.MinSupportedYear {
		return fmt.Errorf("year %d: tables before %d are not supported", *year, domain.MinSupportedYear)
	}
	name := *place
	if name == "" {
		name = (domain.Coordinates{Lat: *lat, Lon: *lon}).String()
	}

	lines, err := generate(name, *year, *lat, *lon)
	if err != nil {
		return err
	}

	if *out == "" {
		return write(os.Stdout, lines)
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := write(f, lines); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %d-line table for %s %d: %s", len(lines), name, *year, *out)
	return nil
}

// generate renders a full year. It fails for latitudes where the sun does
// not rise or set on some day, since the table format has no way to say so.
func generate(place string, year int, lat, lon float64) ([]string, error) {
	var errs []error
	lines := domain.RenderTable(place, year, func(day time.Time) domain.RawTimePair {
		pair, err := sunPair(day, lat, lon)
		if err != nil {
			errs = append(errs, err)
		}
		return pair
	})
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return lines, nil
}

// sunPair returns standard-time sunrise and sunset for a calendar date.
func sunPair(day time.Time, lat, lon float64) (domain.RawTimePair, error) {
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, eastern)
	times := suncalc.GetTimes(noon, lat, lon)

	rise, set := times["sunrise"].Value.In(eastern), times["sunset"].Value.In(eastern)
	if !sameDate(rise, noon) || !sameDate(set, noon) {
		return domain.RawTimePair{}, fmt.Errorf("%s: no sunrise or sunset at %.4f,%.4f", day.Format(time.DateOnly), lat, lon)
	}
	return domain.RawTimePair{
		Sunrise: rise.Round(time.Minute).Format("1504"),
		Sunset:  set.Round(time.Minute).Format("1504"),
	}, nil
}

// sameDate rejects the zero or out-of-range times suncalc yields when the sun
// stays above or below the horizon all day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func write(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
