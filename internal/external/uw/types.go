package uw

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// The Unusual Whales API serializes most numeric fields as JSON strings
// ("152340.50") and occasionally as plain numbers. flexFloat and flexInt
// accept both; a value that parses as neither becomes NaN (resp. 0) so the
// record survives decoding and the skip policy downstream decides its fate.

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = flexFloat(math.NaN())
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = flexFloat(math.NaN())
			return nil
		}
		*f = flexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = flexFloat(math.NaN())
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(v)
		return nil
	}

	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(v)
	return nil
}

// screenerResponse wraps GET /api/screener/stocks
type screenerResponse struct {
	Data []screenerStock `json:"data"`
}

type screenerStock struct {
	Ticker    string    `json:"ticker"`
	MarketCap flexFloat `json:"marketcap"`
}

// stockInfoResponse wraps GET /api/stock/{ticker}/info
type stockInfoResponse struct {
	Data stockInfo `json:"data"`
}

type stockInfo struct {
	Ticker    string    `json:"ticker"`
	FullName  string    `json:"full_name"`
	Sector    string    `json:"sector"`
	MarketCap flexFloat `json:"marketcap"`
}

// flowAlertsResponse wraps GET /api/option-trades/flow-alerts
type flowAlertsResponse struct {
	Data []flowAlert `json:"data"`
}

type flowAlert struct {
	Ticker             string    `json:"ticker"`
	CallPremiumAskSide flexFloat `json:"call_premium_ask_side"`
	CallPremiumBidSide flexFloat `json:"call_premium_bid_side"`
	PutPremiumAskSide  flexFloat `json:"put_premium_ask_side"`
	PutPremiumBidSide  flexFloat `json:"put_premium_bid_side"`
	Expiry             string    `json:"expiry"`
	Date               string    `json:"date"`
	Volume             flexInt   `json:"volume"`
	OpenInterest       flexInt   `json:"open_interest"`
	TotalPremium       flexFloat `json:"total_premium"`
}
