package main

import (
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Decode a USNO table and print daylight-adjusted times",
		Long: `Decode a USNO "Rise and Set for the Sun" table and print one line per day:

  YYYYMMDD = sunrise, sunset

Times are HHMM local clock time; daylight saving time is applied for the
table's year. Use "-" to read the table from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.InOrStdin(), cmd.OutOrStdout(), args[0])
		},
	}
}

func runParse(stdin io.Reader, out io.Writer, path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read table: %w", err)
	}

	rs, err := domain.ParseTable(domain.SplitLines(string(data)))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for _, e := range rs.Entries() {
		if _, err := fmt.Fprintf(out, "%s = %s, %s\n", e.Key, e.Sunrise, e.Sunset); err != nil {
			return err
		}
	}
	return nil
}
