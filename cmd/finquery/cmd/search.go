package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search KEYWORDS",
	Short: "Search symbols by keywords",
	Long: `Search the market-data vendor's symbol directory. Hits are printed in
the vendor's relevance order.

Example:
  finquery search "international business"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	av := newAlphaVantage(cfg, newLogger(cfg))

	keywords := strings.Join(args, " ")
	matches, err := av.Search(cmd.Context(), keywords)
	if err != nil {
		return fmt.Errorf("search %q: %w", keywords, err)
	}

	if len(matches) == 0 {
		fmt.Println("no matches")
		return nil
	}

	for _, m := range matches {
		fmt.Printf("%-8s %-40s %-8s %-14s score %s\n", m.Symbol, m.Name, m.Type, m.Region, m.MatchScore)
	}
	return nil
}
