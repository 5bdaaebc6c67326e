package analyzer

import (
	"context"
	"fmt"
	"sort"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/internal/flow"
	"github.com/wonny/flowrank/internal/ranking"
	"github.com/wonny/flowrank/internal/report"
	"github.com/wonny/flowrank/internal/universe"
	"github.com/wonny/flowrank/pkg/logger"
)

// MarketData is the slice of the vendor API the pipeline needs
type MarketData interface {
	ScreenerStocks(ctx context.Context) ([]contracts.SecurityRecord, error)
	FlowAlerts(ctx context.Context, ticker, date string) ([]contracts.OptionFlowRecord, error)
	StockInfo(ctx context.Context, ticker string) (contracts.CompanyProfile, error)
}

// Result is one completed analysis run
type Result struct {
	Date        string                              `json:"date"`
	Universe    []contracts.FilteredStock           `json:"universe"`
	FlowRecords int                                 `json:"flow_records"`
	Rankings    *contracts.Rankings                 `json:"rankings"`
	Breakdown   []report.CategoryBreakdown          `json:"breakdown"`
	Profiles    map[string]contracts.CompanyProfile `json:"profiles"`
}

// Analyzer runs the full pipeline for one trading date:
// universe → cap filter → flow alerts → aggregation → ranking → breakdown.
// All inputs arrive as parameters; nothing here reads process-wide state.
type Analyzer struct {
	source     MarketData
	classifier *universe.Classifier
	aggregator *flow.Aggregator
	engine     *ranking.Engine
	assembler  *report.Assembler
	logger     *logger.Logger
}

// New creates an analyzer from its stage components
func New(
	source MarketData,
	classifier *universe.Classifier,
	aggregator *flow.Aggregator,
	engine *ranking.Engine,
	assembler *report.Assembler,
	log *logger.Logger,
) *Analyzer {
	return &Analyzer{
		source:     source,
		classifier: classifier,
		aggregator: aggregator,
		engine:     engine,
		assembler:  assembler,
		logger:     log,
	}
}

// Run executes one analysis pass for the given trading date. A ticker whose
// flow fetch fails is skipped; ranking.ErrNoData comes back when no flow at
// all was collected.
func (a *Analyzer) Run(ctx context.Context, date string) (*Result, error) {
	log := a.logger.WithField("date", date)
	log.Info("Starting flow analysis")

	stocks, err := a.source.ScreenerStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch universe: %w", err)
	}

	filtered := a.classifier.Filter(stocks)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("universe: %w", ranking.ErrNoData)
	}

	records := a.collectFlows(ctx, filtered, date)
	caps := universe.MarketCaps(filtered)
	flows := a.aggregator.Aggregate(records, caps)

	rankings, err := a.engine.Rank(date, flows)
	if err != nil {
		return nil, err
	}

	breakdown := a.assembler.Breakdown(rankings, filtered)
	profiles := a.collectProfiles(ctx, flows)

	log.WithFields(map[string]interface{}{
		"universe":     len(filtered),
		"flow_records": len(records),
		"bullish":      len(rankings.Bullish),
		"bearish":      len(rankings.Bearish),
		"profiles":     len(profiles),
	}).Info("Flow analysis completed")

	return &Result{
		Date:        date,
		Universe:    filtered,
		FlowRecords: len(records),
		Rankings:    rankings,
		Breakdown:   breakdown,
		Profiles:    profiles,
	}, nil
}

// collectProfiles fetches company info for every ticker that produced flow.
// Best effort: a failed lookup leaves that ticker without a profile.
func (a *Analyzer) collectProfiles(ctx context.Context, flows map[string]*contracts.TickerFlow) map[string]contracts.CompanyProfile {
	tickers := make([]string, 0, len(flows))
	for t := range flows {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	profiles := make(map[string]contracts.CompanyProfile, len(tickers))
	failed := 0

	for _, ticker := range tickers {
		if ctx.Err() != nil {
			a.logger.WithError(ctx.Err()).Warn("Profile collection interrupted")
			break
		}

		profile, err := a.source.StockInfo(ctx, ticker)
		if err != nil {
			failed++
			a.logger.WithError(err).WithField("ticker", ticker).Warn("Skipping profile after fetch failure")
			continue
		}
		profiles[ticker] = profile
	}

	a.logger.WithFields(map[string]interface{}{
		"tickers":        len(tickers),
		"failed_fetches": failed,
		"profiles":       len(profiles),
	}).Info("Company profiles collected")

	return profiles
}

// collectFlows fetches alerts for every qualifying ticker. Per-ticker
// failures are logged and skipped so one dead symbol cannot sink the run;
// cancellation stops the sweep.
func (a *Analyzer) collectFlows(ctx context.Context, stocks []contracts.FilteredStock, date string) []contracts.OptionFlowRecord {
	records := make([]contracts.OptionFlowRecord, 0)
	failed := 0

	for _, stock := range stocks {
		if ctx.Err() != nil {
			a.logger.WithError(ctx.Err()).Warn("Flow collection interrupted")
			break
		}

		alerts, err := a.source.FlowAlerts(ctx, stock.Ticker, date)
		if err != nil {
			failed++
			a.logger.WithError(err).WithField("ticker", stock.Ticker).Warn("Skipping ticker after fetch failure")
			continue
		}
		records = append(records, alerts...)
	}

	a.logger.WithFields(map[string]interface{}{
		"tickers":        len(stocks),
		"failed_fetches": failed,
		"flow_records":   len(records),
	}).Info("Flow alerts collected")

	return records
}
