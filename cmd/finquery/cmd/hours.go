package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/finquery/finquery/market"
)

var hoursDate string

var hoursCmd = &cobra.Command{
	Use:   "hours MIC",
	Short: "Show an exchange's identity and trading hours",
	Long: `Look up an exchange by MIC code. Without --date, the exchange identity
and today's hours are shown; with --date, that date's hours.

Examples:
  finquery hours XNYS
  finquery hours XNYS --date 2024-03-04`,
	Args: cobra.ExactArgs(1),
	RunE: runHours,
}

func init() {
	rootCmd.AddCommand(hoursCmd)
	hoursCmd.Flags().StringVar(&hoursDate, "date", "", "calendar date (YYYY-MM-DD)")
}

func runHours(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ms := newMarketstack(cfg, newLogger(cfg))
	mic := strings.ToUpper(args[0])

	if hoursDate != "" {
		date, err := time.Parse("2006-01-02", hoursDate)
		if err != nil {
			return fmt.Errorf("parse --date: %w", err)
		}
		h, err := ms.HoursForDate(cmd.Context(), mic, date)
		if err != nil {
			return fmt.Errorf("hours %s: %w", mic, err)
		}
		printHours(h)
		return nil
	}

	m, err := ms.Market(cmd.Context(), mic)
	if err != nil {
		return fmt.Errorf("market %s: %w", mic, err)
	}

	fmt.Printf("%s - %s (%s)\n", m.MIC, m.Name, m.Acronym)
	fmt.Printf("  %s, %s  tz=%s  %s\n", m.City, m.Country, m.Timezone, m.Website)
	printHours(m.Today)
	return nil
}

func printHours(h market.TradingHours) {
	state := "closed"
	if h.IsOpen {
		state = "open"
	}
	fmt.Printf("  %s: %s\n", h.Date.Format("2006-01-02"), state)
	fmt.Printf("    session   %s - %s\n", instant(h.Open), instant(h.Close))
	fmt.Printf("    extended  %s - %s\n", instant(h.ExtendedOpen), instant(h.ExtendedClose))
}

func instant(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04 MST")
}
