package contracts

// RankedEntry is one row of the ranked output
type RankedEntry struct {
	Ticker            string  `json:"ticker"`
	BullishFlow       float64 `json:"bullish_flow"`
	BearishFlow       float64 `json:"bearish_flow"`
	NetFlow           float64 `json:"net_flow"`
	TotalVolume       int64   `json:"total_volume"`
	TotalOpenInterest int64   `json:"total_open_interest"`
	MarketCap         float64 `json:"market_cap"`
	RelativeFlow      float64 `json:"relative_flow"`
	StandardizedScore float64 `json:"standardized_score"`
}

// Rankings holds the two ranked top-N lists for one analysis date
type Rankings struct {
	Date    string        `json:"date"`
	Bullish []RankedEntry `json:"bullish"`
	Bearish []RankedEntry `json:"bearish"`
}

// Tickers returns the tickers of a ranked list in order
func Tickers(entries []RankedEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Ticker)
	}
	return out
}
