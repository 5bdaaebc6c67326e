package contracts

// SecurityRecord is a single stock from the vendor screener, before any
// filtering. MarketCap is NaN when the vendor returned a value that could
// not be parsed as a number.
type SecurityRecord struct {
	Ticker    string  `json:"ticker"`
	MarketCap float64 `json:"market_cap"`
}

// CapCategory is a market capitalization size bucket
type CapCategory string

const (
	CapMega  CapCategory = "mega_cap"
	CapLarge CapCategory = "large_cap"
	CapMid   CapCategory = "mid_cap"
	CapSmall CapCategory = "small_cap"
	CapMicro CapCategory = "micro_cap"
)

// BreakdownOrder is the fixed display order for the category breakdown,
// smallest bucket first
var BreakdownOrder = []CapCategory{CapMicro, CapSmall, CapMid, CapLarge, CapMega}

// DisplayName returns a human-readable category label ("Mega Cap")
func (c CapCategory) DisplayName() string {
	switch c {
	case CapMega:
		return "Mega Cap"
	case CapLarge:
		return "Large Cap"
	case CapMid:
		return "Mid Cap"
	case CapSmall:
		return "Small Cap"
	case CapMicro:
		return "Micro Cap"
	default:
		return string(c)
	}
}

// FilteredStock is a security that passed the market cap filter, annotated
// with its size bucket and the liquidity thresholds used as fetch hints
type FilteredStock struct {
	Ticker          string      `json:"ticker"`
	MarketCap       float64     `json:"market_cap"`
	Category        CapCategory `json:"category"`
	MinOpenInterest int64       `json:"min_open_interest"`
	MinPremiumValue float64     `json:"min_premium_value"`
}
