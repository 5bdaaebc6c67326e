package uw

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/pkg/config"
	"github.com/wonny/flowrank/pkg/logger"
)

// Client handles communication with the Unusual Whales API.
// Requests are paced by a fixed interval rather than retried: the flow
// endpoints are polled once per ticker per run, and a failed ticker is the
// caller's to skip.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new Unusual Whales API client
func NewClient(cfg config.UWConfig, log *logger.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

// ScreenerStocks fetches the full stock universe from the screener endpoint
func (c *Client) ScreenerStocks(ctx context.Context) ([]contracts.SecurityRecord, error) {
	var resp screenerResponse
	if err := c.getJSON(ctx, "/api/screener/stocks", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch screener stocks: %w", err)
	}

	records := make([]contracts.SecurityRecord, 0, len(resp.Data))
	for _, s := range resp.Data {
		records = append(records, contracts.SecurityRecord{
			Ticker:    s.Ticker,
			MarketCap: float64(s.MarketCap),
		})
	}

	c.logger.WithField("count", len(records)).Info("Fetched stock universe")
	return records, nil
}

// FlowAlerts fetches one ticker's options flow alerts for a trading date
func (c *Client) FlowAlerts(ctx context.Context, ticker, date string) ([]contracts.OptionFlowRecord, error) {
	query := url.Values{
		"ticker": {ticker},
		"date":   {date},
	}

	var resp flowAlertsResponse
	if err := c.getJSON(ctx, "/api/option-trades/flow-alerts", query, &resp); err != nil {
		return nil, fmt.Errorf("fetch flow alerts for %s: %w", ticker, err)
	}

	records := make([]contracts.OptionFlowRecord, 0, len(resp.Data))
	for _, a := range resp.Data {
		rec := contracts.OptionFlowRecord{
			Ticker:             a.Ticker,
			CallPremiumAskSide: float64(a.CallPremiumAskSide),
			CallPremiumBidSide: float64(a.CallPremiumBidSide),
			PutPremiumAskSide:  float64(a.PutPremiumAskSide),
			PutPremiumBidSide:  float64(a.PutPremiumBidSide),
			Expiry:             a.Expiry,
			Date:               a.Date,
			Volume:             int64(a.Volume),
			OpenInterest:       int64(a.OpenInterest),
			TotalPremium:       float64(a.TotalPremium),
		}
		if rec.Date == "" {
			rec.Date = date
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		c.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"alerts": len(records),
		}).Debug("Fetched flow alerts")
	}
	return records, nil
}

// StockInfo fetches the vendor's descriptive info for one ticker
func (c *Client) StockInfo(ctx context.Context, ticker string) (contracts.CompanyProfile, error) {
	var resp stockInfoResponse
	path := "/api/stock/" + url.PathEscape(ticker) + "/info"
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return contracts.CompanyProfile{}, fmt.Errorf("fetch stock info for %s: %w", ticker, err)
	}

	profile := contracts.CompanyProfile{
		Ticker:      resp.Data.Ticker,
		CompanyName: resp.Data.FullName,
		Sector:      resp.Data.Sector,
		MarketCap:   float64(resp.Data.MarketCap),
	}
	if profile.Ticker == "" {
		profile.Ticker = ticker
	}
	return profile, nil
}

// getJSON performs a paced, authenticated GET and decodes the JSON body
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(map[string]interface{}{
		"path":        path,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start),
	}).Debug("API request completed")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
