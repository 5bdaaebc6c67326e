package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/logger"
)

func entry(ticker string, net float64) contracts.RankedEntry {
	return contracts.RankedEntry{Ticker: ticker, NetFlow: net}
}

func TestAssembler_Breakdown(t *testing.T) {
	a := NewAssembler(logger.NewNop())

	stocks := []contracts.FilteredStock{
		{Ticker: "MIC1", Category: contracts.CapMicro},
		{Ticker: "MIC2", Category: contracts.CapMicro},
		{Ticker: "MID1", Category: contracts.CapMid},
		{Ticker: "MEG1", Category: contracts.CapMega},
		{Ticker: "MEG2", Category: contracts.CapMega},
		{Ticker: "MEG3", Category: contracts.CapMega},
	}

	rankings := &contracts.Rankings{
		Date: "2026-08-21",
		Bullish: []contracts.RankedEntry{
			entry("MEG1", 900),
			entry("MIC1", 500),
			entry("MEG2", 400),
			entry("MEG3", 100),
		},
		Bearish: []contracts.RankedEntry{
			entry("MID1", -700),
			entry("MIC2", -200),
		},
	}

	breakdown := a.Breakdown(rankings, stocks)
	require.Len(t, breakdown, 3) // small and large buckets have no tickers

	// Smallest bucket first.
	micro := breakdown[0]
	assert.Equal(t, contracts.CapMicro, micro.Category)
	assert.Equal(t, 2, micro.Universe)
	assert.Equal(t, 1, micro.BullishCount)
	assert.Equal(t, 1, micro.BearishCount)
	assert.Equal(t, []string{"MIC1"}, contracts.Tickers(micro.TopBullish))
	assert.Equal(t, []string{"MIC2"}, contracts.Tickers(micro.TopBearish))

	mid := breakdown[1]
	assert.Equal(t, contracts.CapMid, mid.Category)
	assert.Equal(t, 1, mid.Universe)
	assert.Zero(t, mid.BullishCount)
	assert.Equal(t, 1, mid.BearishCount)

	mega := breakdown[2]
	assert.Equal(t, contracts.CapMega, mega.Category)
	assert.Equal(t, 3, mega.Universe)
	assert.Equal(t, 3, mega.BullishCount)
	// Top 2 only, in rank order.
	assert.Equal(t, []string{"MEG1", "MEG2"}, contracts.Tickers(mega.TopBullish))
	assert.Empty(t, mega.TopBearish)
}

func TestAssembler_Breakdown_NoStocks(t *testing.T) {
	a := NewAssembler(logger.NewNop())

	breakdown := a.Breakdown(&contracts.Rankings{Date: "2026-08-21"}, nil)
	assert.Empty(t, breakdown)
}

func TestAssembler_Breakdown_BucketWithoutRankedEntries(t *testing.T) {
	a := NewAssembler(logger.NewNop())

	// Qualifying tickers but nothing ranked: bucket still reported with zeros.
	stocks := []contracts.FilteredStock{
		{Ticker: "QUIET", Category: contracts.CapSmall},
	}
	breakdown := a.Breakdown(&contracts.Rankings{Date: "2026-08-21"}, stocks)
	require.Len(t, breakdown, 1)
	assert.Equal(t, contracts.CapSmall, breakdown[0].Category)
	assert.Equal(t, 1, breakdown[0].Universe)
	assert.Zero(t, breakdown[0].BullishCount)
	assert.Zero(t, breakdown[0].BearishCount)
}
