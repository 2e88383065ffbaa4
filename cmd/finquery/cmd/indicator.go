package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finquery/finquery/alphavantage"
	"github.com/finquery/finquery/market"
)

var (
	indInterval string
	indPeriod   int
	indSeries   string
	indLast     int
)

var indicatorCmd = &cobra.Command{
	Use:   "indicator FUNCTION SYMBOL",
	Short: "Fetch a technical indicator series",
	Long: `Fetch a technical indicator series for a symbol. FUNCTION is one of
SMA, EMA, RSI, BBANDS, MACD, STOCH. Optional per-indicator parameters keep
their vendor-documented defaults.

Examples:
  finquery indicator SMA IBM --period 20
  finquery indicator MACD IBM --interval daily --series close`,
	Args: cobra.ExactArgs(2),
	RunE: runIndicator,
}

func init() {
	rootCmd.AddCommand(indicatorCmd)
	indicatorCmd.Flags().StringVar(&indInterval, "interval", "daily", "bar interval (1min..60min, daily, weekly, monthly)")
	indicatorCmd.Flags().IntVar(&indPeriod, "period", 14, "time period (number of bars)")
	indicatorCmd.Flags().StringVar(&indSeries, "series", "close", "price series (close, open, high, low)")
	indicatorCmd.Flags().IntVar(&indLast, "last", 10, "print only the most recent N bars")
}

func runIndicator(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	av := newAlphaVantage(cfg, newLogger(cfg))

	function := strings.ToUpper(args[0])
	symbol := strings.ToUpper(args[1])
	interval := alphavantage.Interval(indInterval)
	seriesType := alphavantage.SeriesType(indSeries)

	ctx := cmd.Context()
	var recs []market.IndicatorRecord
	switch function {
	case "SMA":
		recs, err = av.SMA(ctx, symbol, interval, indPeriod, seriesType)
	case "EMA":
		recs, err = av.EMA(ctx, symbol, interval, indPeriod, seriesType)
	case "RSI":
		recs, err = av.RSI(ctx, symbol, interval, indPeriod, seriesType)
	case "BBANDS":
		recs, err = av.BBands(ctx, symbol, interval, indPeriod, seriesType, nil)
	case "MACD":
		recs, err = av.MACD(ctx, symbol, interval, indPeriod, seriesType, nil)
	case "STOCH":
		recs, err = av.Stoch(ctx, symbol, interval, indPeriod, seriesType, nil)
	default:
		return fmt.Errorf("unknown indicator %q", function)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", function, symbol, err)
	}

	start := 0
	if indLast > 0 && len(recs) > indLast {
		start = len(recs) - indLast
	}

	for _, r := range recs[start:] {
		names := make([]string, 0, len(r.Fields))
		for name := range r.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, r.Fields[name]))
		}
		fmt.Printf("%s  %s\n", r.Date.Format("2006-01-02 15:04"), strings.Join(parts, "  "))
	}
	return nil
}
