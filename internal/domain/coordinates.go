package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidZipCode is wrapped by every zip code validation failure.
var ErrInvalidZipCode = errors.New("invalid zip code")

// zipSentinel is rejected even though it is well formed.
const zipSentinel = "00000"

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String renders "lat,lon", the form both the NWS and USNO services use.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// ParseCoordinates reads a "lat,lon" pair.
func ParseCoordinates(s string) (Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Coordinates{}, fmt.Errorf("parse coordinates %q: missing comma", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse longitude %q: %w", lonStr, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("parse coordinates %q: out of range", s)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

// ValidateZipCode accepts exactly five ASCII digits other than "00000".
func ValidateZipCode(zip string) error {
	if len(zip) != 5 {
		return fmt.Errorf("%w: %q must be 5 digits", ErrInvalidZipCode, zip)
	}
	for i := 0; i < len(zip); i++ {
		if zip[i] < '0' || zip[i] > '9' {
			return fmt.Errorf("%w: %q is not numeric", ErrInvalidZipCode, zip)
		}
	}
	if zip == zipSentinel {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidZipCode, zip)
	}
	return nil
}

// CoordinateResolver turns a U.S. postal code into coordinates.
type CoordinateResolver interface {
	Resolve(ctx context.Context, zip string) (Coordinates, error)
}
