package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finquery/finquery/journal"
	"github.com/finquery/finquery/market"
)

var (
	dailyAdjusted bool
	dailyLast     int
)

var dailyCmd = &cobra.Command{
	Use:   "daily SYMBOL",
	Short: "Fetch the recent daily price series for a symbol",
	Long: `Fetch the daily price series for a symbol, oldest bar first.

Examples:
  finquery daily IBM
  finquery daily IBM --adjusted --last 5`,
	Args: cobra.ExactArgs(1),
	RunE: runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
	dailyCmd.Flags().BoolVar(&dailyAdjusted, "adjusted", false, "include adjusted close, dividends and splits")
	dailyCmd.Flags().IntVar(&dailyLast, "last", 10, "print only the most recent N bars")
}

func runDaily(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	av := newAlphaVantage(cfg, log)

	jnl, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if jnl != nil {
		defer jnl.Close()
	}

	symbol := strings.ToUpper(args[0])

	var quotes []market.Quote
	if dailyAdjusted {
		quotes, err = av.DailyAdjusted(cmd.Context(), symbol)
	} else {
		quotes, err = av.Daily(cmd.Context(), symbol)
	}
	if err != nil {
		if jnl != nil {
			_ = jnl.RecordFailure(journal.NewFailureRecord("daily "+symbol, err))
		}
		return fmt.Errorf("daily %s: %w", symbol, err)
	}

	start := 0
	if dailyLast > 0 && len(quotes) > dailyLast {
		start = len(quotes) - dailyLast
	}

	for _, q := range quotes[start:] {
		if jnl != nil {
			_ = jnl.RecordQuote(journal.NewQuoteRecord(q))
		}
		fmt.Printf("%s  open %.4f  high %.4f  low %.4f  close %.4f  volume %.0f\n",
			q.Date.Format("2006-01-02"), q.Open, q.High, q.Low, q.Close, q.Volume)
	}
	return nil
}
