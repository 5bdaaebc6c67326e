package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/wonny/flowrank/internal/analyzer"
	"github.com/wonny/flowrank/pkg/logger"
)

// RankingsHandler serves the most recent completed analysis snapshot.
// The snapshot is replaced wholesale after each run; requests never see a
// half-updated result.
type RankingsHandler struct {
	mu     sync.RWMutex
	latest *analyzer.Result
	logger *logger.Logger
}

// NewRankingsHandler creates a handler with no snapshot yet
func NewRankingsHandler(log *logger.Logger) *RankingsHandler {
	return &RankingsHandler{logger: log}
}

// SetResult publishes a new analysis snapshot
func (h *RankingsHandler) SetResult(result *analyzer.Result) {
	h.mu.Lock()
	h.latest = result
	h.mu.Unlock()
}

// snapshot returns the current result, or nil before the first run
func (h *RankingsHandler) snapshot() *analyzer.Result {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// GetBullish returns the bullish ranked list
// GET /api/rankings/bullish
func (h *RankingsHandler) GetBullish(w http.ResponseWriter, r *http.Request) {
	result := h.snapshot()
	if result == nil {
		respondError(w, http.StatusServiceUnavailable, "no analysis completed yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":     result.Date,
		"rankings": result.Rankings.Bullish,
	})
}

// GetBearish returns the bearish ranked list
// GET /api/rankings/bearish
func (h *RankingsHandler) GetBearish(w http.ResponseWriter, r *http.Request) {
	result := h.snapshot()
	if result == nil {
		respondError(w, http.StatusServiceUnavailable, "no analysis completed yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":     result.Date,
		"rankings": result.Rankings.Bearish,
	})
}

// GetBreakdown returns the market cap category breakdown
// GET /api/rankings/breakdown
func (h *RankingsHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	result := h.snapshot()
	if result == nil {
		respondError(w, http.StatusServiceUnavailable, "no analysis completed yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":      result.Date,
		"breakdown": result.Breakdown,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
