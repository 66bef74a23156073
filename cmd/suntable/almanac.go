package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/sun-table-etl/internal/adapter/nws"
	"github.com/couchcryptid/sun-table-etl/internal/adapter/usno"
	"github.com/couchcryptid/sun-table-etl/internal/domain"
	"github.com/couchcryptid/sun-table-etl/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// defaultDays is how many days almanac fetches when --days is not given.
const defaultDays = 4

func almanacCmd() *cobra.Command {
	var (
		zip   string
		days  int
		start string
	)

	cmd := &cobra.Command{
		Use:   "almanac",
		Short: "Fetch sun and moon data for a zip code from the USNO API",
		Long: `Resolve a U.S. zip code to coordinates and fetch per-day sun and moon data.

Resolved coordinates are cached in COORD_FILE. Requests to the USNO API are
spaced by USNO_REQUEST_INTERVAL and at most USNO_MAX_DAYS days are fetched.

Environment variables:
  NWS_BASE_URL           Zip code lookup endpoint
  USNO_BASE_URL          USNO API base URL (default: https://aa.usno.navy.mil)
  COORD_FILE             Coordinate cache file (default: latlong.txt)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlmanac(cmd.Context(), cmd.OutOrStdout(), zip, days, start)
		},
	}

	cmd.Flags().StringVar(&zip, "zip", "", "5-digit U.S. zip code")
	cmd.Flags().IntVar(&days, "days", defaultDays, "number of consecutive days to fetch")
	cmd.Flags().StringVar(&start, "start", "", "first date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("zip")

	return cmd
}

func runAlmanac(ctx context.Context, out io.Writer, zip string, days int, start string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := domain.ValidateZipCode(zip); err != nil {
		return err
	}

	first := domain.Now()
	if start != "" {
		var err error
		if first, err = time.Parse(time.DateOnly, start); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetricsWith(prometheus.NewRegistry())

	resolver, err := nws.NewCachedResolver(
		nws.NewClient(cfg.NWSBaseURL, cfg.NWSTimeout, logger),
		cfg.CoordCacheSize,
		nws.NewFileStore(cfg.CoordFile),
		metrics,
		logger,
	)
	if err != nil {
		return err
	}

	coords, err := resolver.Resolve(ctx, zip)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", zip, err)
	}
	logger.Debug("coordinates resolved", "zip", zip, "coords", coords.String())

	client := usno.NewClient(cfg.USNOBaseURL, usno.Options{
		Timeout:  cfg.USNOTimeout,
		Interval: cfg.USNORequestInterval,
		MaxDays:  cfg.USNOMaxDays,
	}, metrics, logger)

	reports, err := client.Range(ctx, first, days, coords)
	if err != nil {
		return err
	}
	return printReports(out, zip, coords, reports)
}

func printReports(out io.Writer, zip string, coords domain.Coordinates, reports []domain.DayReport) error {
	fmt.Fprintf(out, "%s (%s)\n\n", zip, coords)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDAY\tSUNRISE\tSUNSET\tMOON\tILLUMINATION")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date.Format(time.DateOnly), r.DayOfWeek, r.Sunrise, r.Sunset, r.MoonPhase, r.MoonIllumination)
	}
	return tw.Flush()
}
