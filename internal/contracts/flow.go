package contracts

// OptionFlowRecord is one options flow alert as reported by the vendor.
// Dates stay in the vendor's YYYY-MM-DD form; the expiry weighting step
// parses them and falls back to the default weight when it cannot.
// Premium fields are NaN when the vendor value was not numeric.
type OptionFlowRecord struct {
	Ticker             string  `json:"ticker"`
	CallPremiumAskSide float64 `json:"call_premium_ask_side"`
	CallPremiumBidSide float64 `json:"call_premium_bid_side"`
	PutPremiumAskSide  float64 `json:"put_premium_ask_side"`
	PutPremiumBidSide  float64 `json:"put_premium_bid_side"`
	Expiry             string  `json:"expiry"`
	Date               string  `json:"date"`
	Volume             int64   `json:"volume"`
	OpenInterest       int64   `json:"open_interest"`
	TotalPremium       float64 `json:"total_premium"`
}

// TickerFlow accumulates directional flow for one ticker across all of its
// alerts. BullishFlow/BearishFlow are premium-weighted; volume and open
// interest totals are raw sums.
type TickerFlow struct {
	BullishFlow       float64 `json:"bullish_flow"`
	BearishFlow       float64 `json:"bearish_flow"`
	TotalVolume       int64   `json:"total_volume"`
	TotalOpenInterest int64   `json:"total_open_interest"`
	MarketCap         float64 `json:"market_cap"`
}

// NetFlow returns bullish minus bearish flow
func (f *TickerFlow) NetFlow() float64 {
	return f.BullishFlow - f.BearishFlow
}
