package ranking

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/logger"
)

// ErrNoData signals that the aggregator produced no tickers at all. Callers
// use it to short-circuit output generation; it is distinct from rankings
// that were computed but happen to be empty on one side.
var ErrNoData = errors.New("no flow data to rank")

// DefaultTopN is the ranked list size when none is configured
const DefaultTopN = 20

// Engine derives ranked entries from per-ticker flow totals and produces
// the top-N bullish and bearish lists
type Engine struct {
	topN   int
	logger *logger.Logger
}

// NewEngine creates a ranking engine. topN <= 0 falls back to DefaultTopN.
func NewEngine(topN int, log *logger.Logger) *Engine {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Engine{
		topN:   topN,
		logger: log,
	}
}

// Rank scores every ticker and splits the result into bullish (netFlow > 0,
// best standardized score first) and bearish (netFlow < 0, most negative
// score first) lists, each capped at topN. Tickers with zero net flow appear
// in neither. Returns ErrNoData when flows is empty.
func (e *Engine) Rank(date string, flows map[string]*contracts.TickerFlow) (*contracts.Rankings, error) {
	if len(flows) == 0 {
		return nil, ErrNoData
	}

	entries := make([]contracts.RankedEntry, 0, len(flows))
	for _, ticker := range sortedTickers(flows) {
		entry, err := deriveEntry(ticker, flows[ticker])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	bullish := make([]contracts.RankedEntry, 0, len(entries))
	bearish := make([]contracts.RankedEntry, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.NetFlow > 0:
			bullish = append(bullish, entry)
		case entry.NetFlow < 0:
			bearish = append(bearish, entry)
		}
	}

	// Ties in standardized score break on ticker, ascending, so a run is
	// reproducible regardless of map iteration order.
	sort.SliceStable(bullish, func(i, j int) bool {
		if bullish[i].StandardizedScore != bullish[j].StandardizedScore {
			return bullish[i].StandardizedScore > bullish[j].StandardizedScore
		}
		return bullish[i].Ticker < bullish[j].Ticker
	})
	sort.SliceStable(bearish, func(i, j int) bool {
		if bearish[i].StandardizedScore != bearish[j].StandardizedScore {
			return bearish[i].StandardizedScore < bearish[j].StandardizedScore
		}
		return bearish[i].Ticker < bearish[j].Ticker
	})

	if len(bullish) > e.topN {
		bullish = bullish[:e.topN]
	}
	if len(bearish) > e.topN {
		bearish = bearish[:e.topN]
	}

	e.logger.WithFields(map[string]interface{}{
		"date":    date,
		"tickers": len(entries),
		"bullish": len(bullish),
		"bearish": len(bearish),
	}).Info("Ranking completed")

	return &contracts.Rankings{
		Date:    date,
		Bullish: bullish,
		Bearish: bearish,
	}, nil
}

// deriveEntry computes the per-ticker scores. Negative volume or market cap
// violates the data model upstream, so it surfaces as an error instead of
// being silently normalized.
func deriveEntry(ticker string, f *contracts.TickerFlow) (contracts.RankedEntry, error) {
	if f.TotalVolume < 0 {
		return contracts.RankedEntry{}, fmt.Errorf("ticker %s: negative total volume %d", ticker, f.TotalVolume)
	}
	if f.MarketCap < 0 {
		return contracts.RankedEntry{}, fmt.Errorf("ticker %s: negative market cap %f", ticker, f.MarketCap)
	}

	netFlow := f.BullishFlow - f.BearishFlow

	var relativeFlow float64
	if f.MarketCap > 0 {
		relativeFlow = netFlow / f.MarketCap
	}

	// Keep the (net/vol)*sqrt(vol) form rather than net/sqrt(vol) so
	// floating point results match the historical outputs bit for bit.
	var standardizedScore float64
	if f.TotalVolume > 0 {
		vol := float64(f.TotalVolume)
		standardizedScore = (netFlow / vol) * math.Sqrt(vol)
	}

	return contracts.RankedEntry{
		Ticker:            ticker,
		BullishFlow:       f.BullishFlow,
		BearishFlow:       f.BearishFlow,
		NetFlow:           netFlow,
		TotalVolume:       f.TotalVolume,
		TotalOpenInterest: f.TotalOpenInterest,
		MarketCap:         f.MarketCap,
		RelativeFlow:      relativeFlow,
		StandardizedScore: standardizedScore,
	}, nil
}

// sortedTickers returns map keys in ascending order
func sortedTickers(flows map[string]*contracts.TickerFlow) []string {
	tickers := make([]string, 0, len(flows))
	for t := range flows {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
