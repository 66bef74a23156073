// Command suntable parses USNO sunrise/sunset tables and queries the USNO
// one-day API for a zip code.
package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/sun-table-etl/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "suntable",
		Short:         "Sunrise and sunset tables for the U.S. Eastern time zone",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(parseCmd())
	cmd.AddCommand(almanacCmd())

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
