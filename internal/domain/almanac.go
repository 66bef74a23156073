package domain

import (
	"context"
	"time"
)

// DayReport is the per-date answer of an astronomical data service.
type DayReport struct {
	Date             time.Time `json:"date"`
	DayOfWeek        string    `json:"day_of_week"`
	Sunrise          string    `json:"sunrise"` // HHMM local clock time
	Sunset           string    `json:"sunset"`  // HHMM local clock time
	MoonIllumination string    `json:"moon_illumination"`
	MoonPhase        string    `json:"moon_phase"`
}

// AstroDataSource answers sun and moon questions for one date and place.
type AstroDataSource interface {
	OneDay(ctx context.Context, date time.Time, at Coordinates) (DayReport, error)
}
