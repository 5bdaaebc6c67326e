package contracts

// CompanyProfile is the vendor's descriptive info for one ticker, fetched
// for tickers that produced flow. Purely informational; no score reads it.
type CompanyProfile struct {
	Ticker      string  `json:"ticker"`
	CompanyName string  `json:"company_name"`
	Sector      string  `json:"sector"`
	MarketCap   float64 `json:"market_cap"`
}
