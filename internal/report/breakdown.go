package report

import (
	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/logger"
)

// CategoryBreakdown summarizes one cap bucket's share of the ranked lists
type CategoryBreakdown struct {
	Category     contracts.CapCategory   `json:"category"`
	Universe     int                     `json:"universe"` // qualifying tickers in this bucket
	BullishCount int                     `json:"bullish_count"`
	BearishCount int                     `json:"bearish_count"`
	TopBullish   []contracts.RankedEntry `json:"top_bullish"` // up to 2, in rank order
	TopBearish   []contracts.RankedEntry `json:"top_bearish"` // up to 2, in rank order
}

// Assembler groups ranked results by capitalization bucket
type Assembler struct {
	logger *logger.Logger
}

// NewAssembler creates a report assembler
func NewAssembler(log *logger.Logger) *Assembler {
	return &Assembler{logger: log}
}

// Breakdown walks the five cap buckets smallest-first and reports, for each
// bucket that has qualifying tickers, how many ranked entries fall in it and
// the top 2 per side by existing rank order. Buckets with no qualifying
// tickers are skipped outright.
func (a *Assembler) Breakdown(rankings *contracts.Rankings, stocks []contracts.FilteredStock) []CategoryBreakdown {
	members := make(map[contracts.CapCategory]map[string]bool)
	for _, s := range stocks {
		if members[s.Category] == nil {
			members[s.Category] = make(map[string]bool)
		}
		members[s.Category][s.Ticker] = true
	}

	out := make([]CategoryBreakdown, 0, len(contracts.BreakdownOrder))
	for _, cat := range contracts.BreakdownOrder {
		tickers := members[cat]
		if len(tickers) == 0 {
			continue
		}

		bullish := subset(rankings.Bullish, tickers)
		bearish := subset(rankings.Bearish, tickers)

		out = append(out, CategoryBreakdown{
			Category:     cat,
			Universe:     len(tickers),
			BullishCount: len(bullish),
			BearishCount: len(bearish),
			TopBullish:   head(bullish, 2),
			TopBearish:   head(bearish, 2),
		})
	}

	a.logger.WithField("categories", len(out)).Debug("Market cap breakdown assembled")
	return out
}

// subset keeps the entries whose ticker is in the set, preserving rank order
func subset(entries []contracts.RankedEntry, tickers map[string]bool) []contracts.RankedEntry {
	out := make([]contracts.RankedEntry, 0)
	for _, e := range entries {
		if tickers[e.Ticker] {
			out = append(out, e)
		}
	}
	return out
}

func head(entries []contracts.RankedEntry, n int) []contracts.RankedEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
