package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	paramsFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flowrank",
	Short: "Options flow rankings - top bullish/bearish stocks by order flow",
	Long: `flowrank ranks US equities by aggregated options order flow.

It pulls the stock universe and per-ticker flow alerts from the
Unusual Whales API, weights each alert by time to expiry, aggregates
bullish and bearish premium per ticker, and emits the top-N lists.

Usage:
  flowrank [command]

Examples:
  flowrank analyze
  flowrank analyze --date 2026-08-21 --top 10
  flowrank serve
  flowrank schedule`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		PrintError(err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", "", "YAML parameter file (default: built-in parameters)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
