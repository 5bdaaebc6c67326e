package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/logger"
)

var csvHeader = []string{
	"ticker",
	"bullish_flow",
	"bearish_flow",
	"net_flow",
	"total_volume",
	"total_open_interest",
	"market_cap",
	"relative_flow",
	"standardized_score",
}

// ExportCSV writes the two ranked lists to
// bullish_flow_rankings_<date>.csv and bearish_flow_rankings_<date>.csv
// under dir. Empty lists produce no file. Returns the paths written.
func ExportCSV(rankings *contracts.Rankings, dir string, log *logger.Logger) ([]string, error) {
	written := make([]string, 0, 2)

	sides := []struct {
		name    string
		entries []contracts.RankedEntry
	}{
		{"bullish", rankings.Bullish},
		{"bearish", rankings.Bearish},
	}

	for _, side := range sides {
		if len(side.entries) == 0 {
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_flow_rankings_%s.csv", side.name, rankings.Date))
		if err := writeRankingsFile(path, side.entries); err != nil {
			return written, fmt.Errorf("export %s rankings: %w", side.name, err)
		}

		log.WithFields(map[string]interface{}{
			"side": side.name,
			"rows": len(side.entries),
			"path": path,
		}).Info("Rankings exported to CSV")
		written = append(written, path)
	}

	return written, nil
}

func writeRankingsFile(path string, entries []contracts.RankedEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.Ticker,
			formatFloat(e.BullishFlow),
			formatFloat(e.BearishFlow),
			formatFloat(e.NetFlow),
			strconv.FormatInt(e.TotalVolume, 10),
			strconv.FormatInt(e.TotalOpenInterest, 10),
			formatFloat(e.MarketCap),
			formatFloat(e.RelativeFlow),
			formatFloat(e.StandardizedScore),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// formatFloat uses the shortest representation that round-trips, matching
// how spreadsheet tools expect raw numeric columns
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
