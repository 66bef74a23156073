package usno

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
	"github.com/couchcryptid/sun-table-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// standardOffset is the fixed zone the service reports in (UTC-5, with DST).
const standardOffset = -5

var _ domain.AstroDataSource = (*Client)(nil)

// Client implements domain.AstroDataSource using the USNO "rstt/oneday" API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clock      clockwork.Clock
	interval   time.Duration
	maxDays    int
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// Options tunes request pacing. Zero values fall back to one request per
// second and 30 days per range.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
	MaxDays  int
	Clock    clockwork.Clock
}

// NewClient creates a USNO client.
func NewClient(baseURL string, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		clock:      opts.Clock,
		interval:   opts.Interval,
		maxDays:    opts.MaxDays,
		metrics:    metrics,
		logger:     logger,
	}
}

// OneDay fetches sun and moon data for a single date.
func (c *Client) OneDay(ctx context.Context, date time.Time, at domain.Coordinates) (domain.DayReport, error) {
	params := url.Values{
		"date":   {date.Format(time.DateOnly)},
		"coords": {at.String()},
		"tz":     {strconv.Itoa(standardOffset)},
		"dst":    {"true"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/rstt/oneday?"+params.Encode(), nil)
	if err != nil {
		return domain.DayReport{}, fmt.Errorf("create request: %w", err)
	}

	start := c.clock.Now()
	report, err := c.do(req, date)
	c.metrics.AstroAPIDuration.Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.AstroRequests.WithLabelValues("error").Inc()
		return domain.DayReport{}, err
	}
	c.metrics.AstroRequests.WithLabelValues("success").Inc()
	return report, nil
}

func (c *Client) do(req *http.Request, date time.Time) (domain.DayReport, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DayReport{}, fmt.Errorf("oneday request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.DayReport{}, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.DayReport{}, fmt.Errorf("decode response: %w", err)
	}

	data := payload.Properties.Data
	report := domain.DayReport{
		Date:             date,
		DayOfWeek:        data.DayOfWeek,
		MoonIllumination: data.FracIllum,
		MoonPhase:        data.CurPhase,
	}
	for _, p := range data.SunData {
		switch strings.ToLower(p.Phen) {
		case "rise":
			report.Sunrise = toHHMM(p.Time)
		case "set":
			report.Sunset = toHHMM(p.Time)
		}
	}
	return report, nil
}

// Range fetches days consecutive dates starting at start, pausing between
// calls to respect the service's request rate. days is capped at the
// configured maximum. Any failure aborts the range.
func (c *Client) Range(ctx context.Context, start time.Time, days int, at domain.Coordinates) ([]domain.DayReport, error) {
	if days < 1 {
		return nil, errors.New("range must cover at least one day")
	}
	if days > c.maxDays {
		c.logger.Warn("requested range too long, truncating", "requested", days, "max", c.maxDays)
		days = c.maxDays
	}

	reports := make([]domain.DayReport, 0, days)
	for i := 0; i < days; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-c.clock.After(c.interval):
			}
		}
		date := start.AddDate(0, 0, i)
		report, err := c.OneDay(ctx, date, at)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", date.Format(time.DateOnly), err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// toHHMM turns the API's "07:16" into "0716".
func toHHMM(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ":", "")
}

// USNO API response types.

type response struct {
	Properties properties `json:"properties"`
}

type properties struct {
	Data dayData `json:"data"`
}

type dayData struct {
	CurPhase  string       `json:"curphase"`
	DayOfWeek string       `json:"day_of_week"`
	FracIllum string       `json:"fracillum"`
	SunData   []phenomenon `json:"sundata"`
}

type phenomenon struct {
	Phen string `json:"phen"`
	Time string `json:"time"`
}
