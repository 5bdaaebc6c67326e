package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/flowrank/internal/marketclock"
	"github.com/wonny/flowrank/internal/ranking"
	"github.com/wonny/flowrank/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot flow analysis",
	Long: `Fetches the stock universe and options flow alerts for one trading
day, then prints the top bullish/bearish rankings and the market cap
breakdown. Rankings are also exported as CSV unless --no-csv is set.

Example:
  flowrank analyze
  flowrank analyze --date 2026-08-21 --top 10
  flowrank analyze --params params.yaml --out ./exports`,
	RunE: runAnalyze,
}

var (
	analyzeDate  string
	analyzeTopN  int
	analyzeOut   string
	analyzeNoCSV bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "trading date YYYY-MM-DD (default: current or last session)")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top", 0, "ranked list size (default 20)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "CSV export directory (default: EXPORT_DIR)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCSV, "no-csv", false, "skip CSV export")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, log, p, err := loadRuntime(analyzeTopN)
	if err != nil {
		return err
	}

	date := analyzeDate
	if date == "" {
		clock, err := marketclock.New()
		if err != nil {
			return err
		}
		date = clock.AnalysisDate()
		if clock.IsOpen() {
			PrintInfo(fmt.Sprintf("Market open, analyzing today's session (%s)", date))
		} else {
			PrintInfo(fmt.Sprintf("Market closed, analyzing last session (%s)", date))
		}
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
	}

	a := buildAnalyzer(cfg, log, p)

	result, err := a.Run(context.Background(), date)
	if err != nil {
		if errors.Is(err, ranking.ErrNoData) {
			PrintInfo("No options flow data retrieved")
			PrintInfo("Possible causes: API key issues, no trading data for the date, market closed")
			return err
		}
		return err
	}

	RenderRankings(result.Rankings, p.TopN)
	RenderBreakdown(result.Breakdown, result.Profiles)
	fmt.Println()

	if !analyzeNoCSV {
		dir := analyzeOut
		if dir == "" {
			dir = cfg.ExportDir
		}
		paths, err := report.ExportCSV(result.Rankings, dir, log)
		if err != nil {
			return err
		}
		for _, path := range paths {
			PrintSuccess("Saved " + path)
		}
	}

	PrintSuccess(fmt.Sprintf("Analysis completed at %s", time.Now().Format("2006-01-02 15:04:05")))
	return nil
}
