package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var nextOpenCmd = &cobra.Command{
	Use:   "next-open MIC",
	Short: "Resolve the next market open instant",
	Long: `Walk the exchange's calendar forward from now to the next open instant.

Example:
  finquery next-open XNYS`,
	Args: cobra.ExactArgs(1),
	RunE: runNextSession,
}

var nextCloseCmd = &cobra.Command{
	Use:   "next-close MIC",
	Short: "Resolve the next market close instant",
	Long: `Walk the exchange's calendar forward from now to the next close instant.

Example:
  finquery next-close XNYS`,
	Args: cobra.ExactArgs(1),
	RunE: runNextSession,
}

func init() {
	rootCmd.AddCommand(nextOpenCmd)
	rootCmd.AddCommand(nextCloseCmd)
}

func runNextSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ms := newMarketstack(cfg, newLogger(cfg))
	mic := strings.ToUpper(args[0])
	now := time.Now()

	var instant time.Time
	if cmd.Name() == "next-close" {
		instant, err = ms.NextClose(cmd.Context(), mic, now)
	} else {
		instant, err = ms.NextOpen(cmd.Context(), mic, now)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", cmd.Name(), mic, err)
	}

	fmt.Printf("%s %s: %s (in %s)\n", mic, cmd.Name(), instant.Format(time.RFC1123), time.Until(instant).Round(time.Minute))
	return nil
}
