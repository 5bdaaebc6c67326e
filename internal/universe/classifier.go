package universe

import (
	"math"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/logger"
)

// Bucket defines one market cap size band and the liquidity thresholds
// downstream flow fetching uses as eligibility hints
type Bucket struct {
	Category        contracts.CapCategory `yaml:"category" json:"category"`
	MinMarketCap    float64               `yaml:"min_market_cap" json:"min_market_cap"`
	MinOpenInterest int64                 `yaml:"min_open_interest" json:"min_open_interest"`
	MinPremiumValue float64               `yaml:"min_premium_value" json:"min_premium_value"`
}

// DefaultBuckets returns the standard cap bands, largest first.
// First match wins in Classify, so the order is part of the contract.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Category: contracts.CapMega, MinMarketCap: 200_000_000_000, MinOpenInterest: 1000, MinPremiumValue: 100_000},
		{Category: contracts.CapLarge, MinMarketCap: 10_000_000_000, MinOpenInterest: 500, MinPremiumValue: 50_000},
		{Category: contracts.CapMid, MinMarketCap: 2_000_000_000, MinOpenInterest: 200, MinPremiumValue: 20_000},
		{Category: contracts.CapSmall, MinMarketCap: 1_000_000_000, MinOpenInterest: 100, MinPremiumValue: 10_000},
		{Category: contracts.CapMicro, MinMarketCap: 300_000_000, MinOpenInterest: 50, MinPremiumValue: 5_000},
	}
}

// Classifier assigns securities to cap buckets and drops everything below
// the smallest band
type Classifier struct {
	buckets []Bucket
	logger  *logger.Logger
}

// NewClassifier creates a classifier over the given bucket table
func NewClassifier(buckets []Bucket, log *logger.Logger) *Classifier {
	return &Classifier{
		buckets: buckets,
		logger:  log,
	}
}

// Classify maps one security to its filtered form. The second return value
// is false when the record is excluded: missing ticker, unusable market cap,
// or a cap below the smallest bucket. Exclusion is a soft filter, never an
// error.
func (c *Classifier) Classify(rec contracts.SecurityRecord) (contracts.FilteredStock, bool) {
	if rec.Ticker == "" {
		return contracts.FilteredStock{}, false
	}
	if math.IsNaN(rec.MarketCap) || math.IsInf(rec.MarketCap, 0) || rec.MarketCap < 0 {
		return contracts.FilteredStock{}, false
	}

	for _, b := range c.buckets {
		if rec.MarketCap >= b.MinMarketCap {
			return contracts.FilteredStock{
				Ticker:          rec.Ticker,
				MarketCap:       rec.MarketCap,
				Category:        b.Category,
				MinOpenInterest: b.MinOpenInterest,
				MinPremiumValue: b.MinPremiumValue,
			}, true
		}
	}

	return contracts.FilteredStock{}, false
}

// Filter classifies every record, preserving input order and dropping the
// excluded ones
func (c *Classifier) Filter(records []contracts.SecurityRecord) []contracts.FilteredStock {
	filtered := make([]contracts.FilteredStock, 0, len(records))
	excluded := 0

	for _, rec := range records {
		stock, ok := c.Classify(rec)
		if !ok {
			excluded++
			continue
		}
		filtered = append(filtered, stock)
	}

	c.logger.WithFields(map[string]interface{}{
		"total_input": len(records),
		"qualified":   len(filtered),
		"excluded":    excluded,
	}).Info("Universe filtered by market cap")

	return filtered
}

// MarketCaps builds a ticker to market cap lookup from the filtered universe
func MarketCaps(stocks []contracts.FilteredStock) map[string]float64 {
	caps := make(map[string]float64, len(stocks))
	for _, s := range stocks {
		caps[s.Ticker] = s.MarketCap
	}
	return caps
}
