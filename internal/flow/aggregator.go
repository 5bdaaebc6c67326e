package flow

import (
	"math"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/logger"
)

// SkipReason explains why a flow record was dropped before aggregation
type SkipReason string

const (
	SkipMissingTicker   SkipReason = "missing_ticker"
	SkipInvalidPremium  SkipReason = "invalid_premium"
	SkipNegativeVolume  SkipReason = "negative_volume"
	SkipNegativeOpenInt SkipReason = "negative_open_interest"
)

// ValidateRecord checks one flow record and returns the reason it should be
// skipped, or "" when it is usable. Keeping the skip policy here, outside
// the accumulation loop, makes it independently testable.
func ValidateRecord(rec contracts.OptionFlowRecord) SkipReason {
	if rec.Ticker == "" {
		return SkipMissingTicker
	}
	for _, p := range []float64{
		rec.CallPremiumAskSide,
		rec.CallPremiumBidSide,
		rec.PutPremiumAskSide,
		rec.PutPremiumBidSide,
	} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return SkipInvalidPremium
		}
	}
	if rec.Volume < 0 {
		return SkipNegativeVolume
	}
	if rec.OpenInterest < 0 {
		return SkipNegativeOpenInt
	}
	return ""
}

// Aggregator folds flow alerts into per-ticker directional totals
type Aggregator struct {
	weigher *Weigher
	logger  *logger.Logger
}

// NewAggregator creates a new flow aggregator
func NewAggregator(weigher *Weigher, log *logger.Logger) *Aggregator {
	return &Aggregator{
		weigher: weigher,
		logger:  log,
	}
}

// Aggregate consumes flow records and returns final per-ticker totals.
// Malformed records are skipped, never fatal; one bad alert cannot lose the
// batch. marketCaps seeds each accumulator's cap (0 when the ticker is
// absent from the map). Empty input yields an empty map.
func (a *Aggregator) Aggregate(records []contracts.OptionFlowRecord, marketCaps map[string]float64) map[string]*contracts.TickerFlow {
	flows := make(map[string]*contracts.TickerFlow)
	skipped := make(map[SkipReason]int)

	for _, rec := range records {
		if reason := ValidateRecord(rec); reason != "" {
			skipped[reason]++
			continue
		}

		acc, exists := flows[rec.Ticker]
		if !exists {
			acc = &contracts.TickerFlow{
				MarketCap: marketCaps[rec.Ticker],
			}
			flows[rec.Ticker] = acc
		}

		dteWeight := a.weigher.Weight(rec.Expiry, rec.Date)

		// FS = Σ(premium × volume × w(DTE)).
		// Aggressive call buying and put selling read bullish; aggressive
		// put buying and call selling read bearish.
		volume := float64(rec.Volume)
		acc.BullishFlow += (rec.CallPremiumAskSide + rec.PutPremiumBidSide) * volume * dteWeight
		acc.BearishFlow += (rec.PutPremiumAskSide + rec.CallPremiumBidSide) * volume * dteWeight

		// Volume and open interest totals stay unweighted.
		acc.TotalVolume += rec.Volume
		acc.TotalOpenInterest += rec.OpenInterest
	}

	fields := map[string]interface{}{
		"records": len(records),
		"tickers": len(flows),
	}
	for reason, count := range skipped {
		fields["skipped_"+string(reason)] = count
	}
	a.logger.WithFields(fields).Info("Flow aggregation completed")

	return flows
}
