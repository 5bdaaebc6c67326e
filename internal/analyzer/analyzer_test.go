package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/internal/flow"
	"github.com/wonny/flowrank/internal/ranking"
	"github.com/wonny/flowrank/internal/report"
	"github.com/wonny/flowrank/internal/universe"
	"github.com/wonny/flowrank/pkg/logger"
)

type fakeMarketData struct {
	stocks    []contracts.SecurityRecord
	stocksErr error
	alerts    map[string][]contracts.OptionFlowRecord
	alertErrs map[string]error
	infos     map[string]contracts.CompanyProfile
	infoErrs  map[string]error
	calls     []string
	infoCalls []string
}

func (f *fakeMarketData) ScreenerStocks(ctx context.Context) ([]contracts.SecurityRecord, error) {
	return f.stocks, f.stocksErr
}

func (f *fakeMarketData) FlowAlerts(ctx context.Context, ticker, date string) ([]contracts.OptionFlowRecord, error) {
	f.calls = append(f.calls, ticker)
	if err := f.alertErrs[ticker]; err != nil {
		return nil, err
	}
	return f.alerts[ticker], nil
}

func (f *fakeMarketData) StockInfo(ctx context.Context, ticker string) (contracts.CompanyProfile, error) {
	f.infoCalls = append(f.infoCalls, ticker)
	if err := f.infoErrs[ticker]; err != nil {
		return contracts.CompanyProfile{}, err
	}
	if p, ok := f.infos[ticker]; ok {
		return p, nil
	}
	return contracts.CompanyProfile{Ticker: ticker}, nil
}

func newTestAnalyzer(source MarketData) *Analyzer {
	log := logger.NewNop()
	return New(
		source,
		universe.NewClassifier(universe.DefaultBuckets(), log),
		flow.NewAggregator(flow.DefaultWeigher(), log),
		ranking.NewEngine(20, log),
		report.NewAssembler(log),
		log,
	)
}

func alert(ticker string, callAsk, putAsk float64, volume int64) contracts.OptionFlowRecord {
	return contracts.OptionFlowRecord{
		Ticker:             ticker,
		CallPremiumAskSide: callAsk,
		PutPremiumAskSide:  putAsk,
		Expiry:             "2026-08-22",
		Date:               "2026-08-21",
		Volume:             volume,
	}
}

func TestAnalyzer_Run(t *testing.T) {
	source := &fakeMarketData{
		stocks: []contracts.SecurityRecord{
			{Ticker: "MEGA", MarketCap: 5e11},
			{Ticker: "SMALL", MarketCap: 1.5e9},
			{Ticker: "PENNY", MarketCap: 1e7}, // excluded by cap filter
		},
		alerts: map[string][]contracts.OptionFlowRecord{
			"MEGA":  {alert("MEGA", 100, 0, 50)},
			"SMALL": {alert("SMALL", 0, 40, 30)},
		},
		infos: map[string]contracts.CompanyProfile{
			"MEGA": {Ticker: "MEGA", CompanyName: "Mega Corp", Sector: "Technology"},
		},
	}

	result, err := newTestAnalyzer(source).Run(context.Background(), "2026-08-21")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-21", result.Date)
	require.Len(t, result.Universe, 2)
	assert.Equal(t, 2, result.FlowRecords)
	// Excluded tickers are never fetched.
	assert.NotContains(t, source.calls, "PENNY")

	require.Len(t, result.Rankings.Bullish, 1)
	assert.Equal(t, "MEGA", result.Rankings.Bullish[0].Ticker)
	require.Len(t, result.Rankings.Bearish, 1)
	assert.Equal(t, "SMALL", result.Rankings.Bearish[0].Ticker)

	// Breakdown runs smallest bucket first over the filtered universe.
	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, contracts.CapSmall, result.Breakdown[0].Category)
	assert.Equal(t, contracts.CapMega, result.Breakdown[1].Category)

	// Profiles are fetched for every ticker that produced flow, in order.
	assert.Equal(t, []string{"MEGA", "SMALL"}, source.infoCalls)
	require.Len(t, result.Profiles, 2)
	assert.Equal(t, "Mega Corp", result.Profiles["MEGA"].CompanyName)
}

func TestAnalyzer_Run_UniverseFetchFails(t *testing.T) {
	source := &fakeMarketData{stocksErr: errors.New("api down")}

	_, err := newTestAnalyzer(source).Run(context.Background(), "2026-08-21")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch universe")
}

func TestAnalyzer_Run_EmptyUniverseIsNoData(t *testing.T) {
	source := &fakeMarketData{
		stocks: []contracts.SecurityRecord{
			{Ticker: "PENNY", MarketCap: 1e7},
		},
	}

	_, err := newTestAnalyzer(source).Run(context.Background(), "2026-08-21")
	assert.ErrorIs(t, err, ranking.ErrNoData)
}

func TestAnalyzer_Run_NoFlowsIsNoData(t *testing.T) {
	source := &fakeMarketData{
		stocks: []contracts.SecurityRecord{{Ticker: "MEGA", MarketCap: 5e11}},
		alerts: map[string][]contracts.OptionFlowRecord{},
	}

	_, err := newTestAnalyzer(source).Run(context.Background(), "2026-08-21")
	assert.ErrorIs(t, err, ranking.ErrNoData)
}

func TestAnalyzer_Run_FailedTickerSkipped(t *testing.T) {
	source := &fakeMarketData{
		stocks: []contracts.SecurityRecord{
			{Ticker: "DEAD", MarketCap: 5e11},
			{Ticker: "LIVE", MarketCap: 5e11},
		},
		alertErrs: map[string]error{"DEAD": errors.New("timeout")},
		alerts: map[string][]contracts.OptionFlowRecord{
			"LIVE": {alert("LIVE", 10, 0, 5)},
		},
	}

	result, err := newTestAnalyzer(source).Run(context.Background(), "2026-08-21")
	require.NoError(t, err)
	assert.Equal(t, 1, result.FlowRecords)
	assert.Equal(t, []string{"LIVE"}, contracts.Tickers(result.Rankings.Bullish))
}

func TestAnalyzer_Run_ProfileFailureSkipped(t *testing.T) {
	source := &fakeMarketData{
		stocks: []contracts.SecurityRecord{
			{Ticker: "AAA", MarketCap: 5e11},
			{Ticker: "BBB", MarketCap: 5e11},
		},
		alerts: map[string][]contracts.OptionFlowRecord{
			"AAA": {alert("AAA", 10, 0, 5)},
			"BBB": {alert("BBB", 20, 0, 5)},
		},
		infoErrs: map[string]error{"AAA": errors.New("timeout")},
		infos: map[string]contracts.CompanyProfile{
			"BBB": {Ticker: "BBB", CompanyName: "Bee Corp"},
		},
	}

	result, err := newTestAnalyzer(source).Run(context.Background(), "2026-08-21")
	require.NoError(t, err)

	// The failed lookup costs only that ticker's profile, never the run.
	require.Len(t, result.Profiles, 1)
	assert.NotContains(t, result.Profiles, "AAA")
	assert.Equal(t, "Bee Corp", result.Profiles["BBB"].CompanyName)
	assert.Len(t, result.Rankings.Bullish, 2)
}

func TestAnalyzer_Run_CancelledContext(t *testing.T) {
	source := &fakeMarketData{
		stocks: []contracts.SecurityRecord{{Ticker: "MEGA", MarketCap: 5e11}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAnalyzer(source).Run(ctx, "2026-08-21")
	// Sweep is interrupted before any flow is collected.
	assert.ErrorIs(t, err, ranking.ErrNoData)
	assert.Empty(t, source.calls)
}
