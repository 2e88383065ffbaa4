package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finquery/finquery/alphavantage"
	"github.com/finquery/finquery/config"
	"github.com/finquery/finquery/journal"
	"github.com/finquery/finquery/marketstack"
)

var rootCmd = &cobra.Command{
	Use:   "finquery",
	Short: "Query normalized quotes, markets, trading hours and indicators",
	Long: `finquery normalizes two financial data vendors into one command line.

It provides tools for:
  - Fetching latest quotes and daily price series
  - Searching symbols across regions
  - Looking up exchange identity and trading hours
  - Resolving the next market open or close
  - Fetching technical indicator series (SMA, EMA, RSI, BBANDS, MACD, STOCH)
  - Journaling fetched quotes and failures to CSV or SQLite`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "finquery.yaml", "config file path")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func newAlphaVantage(cfg *config.Config, log zerolog.Logger) *alphavantage.Client {
	opts := []alphavantage.Option{alphavantage.WithLogger(log)}
	if cfg.AlphaVantage.BaseURL != "" {
		opts = append(opts, alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL))
	}
	if d := cfg.AlphaVantage.Timeout(); d > 0 {
		opts = append(opts, alphavantage.WithTimeout(d))
	}
	return alphavantage.New(cfg.AlphaVantage.APIKey, opts...)
}

func newMarketstack(cfg *config.Config, log zerolog.Logger) *marketstack.Client {
	opts := []marketstack.Option{marketstack.WithLogger(log)}
	if cfg.Marketstack.BaseURL != "" {
		opts = append(opts, marketstack.WithBaseURL(cfg.Marketstack.BaseURL))
	}
	if d := cfg.Marketstack.Timeout(); d > 0 {
		opts = append(opts, marketstack.WithTimeout(d))
	}
	if cfg.Lookahead.MaxDays > 0 {
		opts = append(opts, marketstack.WithMaxLookaheadDays(cfg.Lookahead.MaxDays))
	}
	return marketstack.New(cfg.Marketstack.APIKey, opts...)
}

// openJournal returns the configured audit journal, or nil when disabled.
func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(cfg.Journal.QuotesFile, cfg.Journal.FailuresFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}
