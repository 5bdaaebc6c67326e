package flow

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/logger"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(DefaultWeigher(), logger.NewNop())
}

func TestAggregator_Aggregate_WeightedContributions(t *testing.T) {
	a := newTestAggregator()

	// Three identical near-dated alerts: dte=2 so weight 1.0.
	// Bullish per record = (5 + 2) * 100 * 1.0 = 700.
	rec := contracts.OptionFlowRecord{
		Ticker:             "XYZ",
		CallPremiumAskSide: 5,
		PutPremiumBidSide:  2,
		Expiry:             "2026-08-23",
		Date:               "2026-08-21",
		Volume:             100,
		OpenInterest:       40,
	}

	flows := a.Aggregate([]contracts.OptionFlowRecord{rec, rec, rec}, map[string]float64{"XYZ": 1e9})
	require.Len(t, flows, 1)

	f := flows["XYZ"]
	require.NotNil(t, f)
	assert.InDelta(t, 2100.0, f.BullishFlow, 1e-9)
	assert.Zero(t, f.BearishFlow)
	assert.Equal(t, int64(300), f.TotalVolume)
	assert.Equal(t, int64(120), f.TotalOpenInterest)
	assert.Equal(t, 1e9, f.MarketCap)
}

func TestAggregator_Aggregate_BearishSide(t *testing.T) {
	a := newTestAggregator()

	rec := contracts.OptionFlowRecord{
		Ticker:            "BEAR",
		PutPremiumAskSide: 10,
		CallPremiumBidSide: 4,
		Expiry:            "2026-09-18", // dte=28, weight 0.85
		Date:              "2026-08-21",
		Volume:            50,
	}

	flows := a.Aggregate([]contracts.OptionFlowRecord{rec}, nil)
	f := flows["BEAR"]
	require.NotNil(t, f)
	assert.Zero(t, f.BullishFlow)
	assert.InDelta(t, (10.0+4.0)*50*0.85, f.BearishFlow, 1e-9)
	assert.Zero(t, f.MarketCap) // no mapping supplied
}

func TestAggregator_Aggregate_OrderIndependent(t *testing.T) {
	a := newTestAggregator()

	records := []contracts.OptionFlowRecord{
		{Ticker: "AAA", CallPremiumAskSide: 3, Volume: 10, Expiry: "2026-08-25", Date: "2026-08-21", OpenInterest: 5},
		{Ticker: "BBB", PutPremiumAskSide: 7, Volume: 20, Expiry: "2026-10-16", Date: "2026-08-21", OpenInterest: 9},
		{Ticker: "AAA", PutPremiumBidSide: 2, Volume: 15, Expiry: "2027-01-15", Date: "2026-08-21", OpenInterest: 3},
		{Ticker: "BBB", CallPremiumBidSide: 1, Volume: 5, Expiry: "2026-08-22", Date: "2026-08-21", OpenInterest: 1},
	}

	want := a.Aggregate(records, nil)

	shuffled := make([]contracts.OptionFlowRecord, len(records))
	copy(shuffled, records)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := a.Aggregate(shuffled, nil)
		require.Len(t, got, len(want))
		for ticker, w := range want {
			g := got[ticker]
			require.NotNil(t, g)
			assert.InDelta(t, w.BullishFlow, g.BullishFlow, 1e-9)
			assert.InDelta(t, w.BearishFlow, g.BearishFlow, 1e-9)
			assert.Equal(t, w.TotalVolume, g.TotalVolume)
			assert.Equal(t, w.TotalOpenInterest, g.TotalOpenInterest)
		}
	}
}

func TestAggregator_Aggregate_SkipsMalformed(t *testing.T) {
	a := newTestAggregator()

	good := contracts.OptionFlowRecord{
		Ticker:             "GOOD",
		CallPremiumAskSide: 5,
		Volume:             10,
		Expiry:             "2026-08-23",
		Date:               "2026-08-21",
	}
	bad := contracts.OptionFlowRecord{
		Ticker:             "BAD",
		CallPremiumAskSide: math.NaN(),
		Volume:             10,
	}
	noTicker := contracts.OptionFlowRecord{Volume: 10, CallPremiumAskSide: 1}

	// A batch with malformed records aggregates exactly like the clean one.
	withBad := a.Aggregate([]contracts.OptionFlowRecord{good, bad, noTicker}, nil)
	onlyGood := a.Aggregate([]contracts.OptionFlowRecord{good}, nil)

	require.Len(t, withBad, 1)
	assert.Equal(t, onlyGood["GOOD"], withBad["GOOD"])
}

func TestAggregator_Aggregate_Empty(t *testing.T) {
	a := newTestAggregator()
	flows := a.Aggregate(nil, nil)
	assert.NotNil(t, flows)
	assert.Empty(t, flows)
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name   string
		record contracts.OptionFlowRecord
		want   SkipReason
	}{
		{
			name:   "valid",
			record: contracts.OptionFlowRecord{Ticker: "OK", Volume: 1},
			want:   "",
		},
		{
			name:   "missing ticker",
			record: contracts.OptionFlowRecord{Volume: 1},
			want:   SkipMissingTicker,
		},
		{
			name:   "NaN premium",
			record: contracts.OptionFlowRecord{Ticker: "X", PutPremiumBidSide: math.NaN()},
			want:   SkipInvalidPremium,
		},
		{
			name:   "infinite premium",
			record: contracts.OptionFlowRecord{Ticker: "X", CallPremiumBidSide: math.Inf(1)},
			want:   SkipInvalidPremium,
		},
		{
			name:   "negative volume",
			record: contracts.OptionFlowRecord{Ticker: "X", Volume: -5},
			want:   SkipNegativeVolume,
		},
		{
			name:   "negative open interest",
			record: contracts.OptionFlowRecord{Ticker: "X", OpenInterest: -1},
			want:   SkipNegativeOpenInt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateRecord(tt.record))
		})
	}
}
