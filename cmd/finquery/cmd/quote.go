package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finquery/finquery/journal"
)

var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL",
	Short: "Fetch the latest quote for a symbol",
	Long: `Fetch the latest normalized quote for a symbol from the market-data
vendor. When a journal is configured, the quote is recorded there too.

Example:
  finquery quote IBM`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
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
	q, err := av.Quote(cmd.Context(), symbol)
	if err != nil {
		if jnl != nil {
			_ = jnl.RecordFailure(journal.NewFailureRecord("quote "+symbol, err))
		}
		return fmt.Errorf("quote %s: %w", symbol, err)
	}

	if jnl != nil {
		if err := jnl.RecordQuote(journal.NewQuoteRecord(q)); err != nil {
			log.Warn().Err(err).Msg("journal write failed")
		}
	}

	fmt.Printf("%s (%s) %s\n", q.Symbol, q.Source, q.Date.Format("2006-01-02"))
	fmt.Printf("  open %.4f  high %.4f  low %.4f  last %.4f\n", q.Open, q.High, q.Low, q.Last)
	fmt.Printf("  volume %.0f  change %s (%s)\n", q.Volume, q.Meta.Change, q.Meta.ChangePercent)
	return nil
}
