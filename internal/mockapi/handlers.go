package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := healthsearch.HealthResponse{
		Message:      "Alive!",
		Requests:     s.requests,
		CacheCount:   len(s.cacheOrder),
		CacheQueries: append([]string{}, s.cacheOrder...),
	}
	healthy := s.healthy
	s.mu.Unlock()

	status := http.StatusOK
	if !healthy {
		resp.Message = "Database connection failed!"
		resp.CacheQueries = []string{}
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

// generateResponse mirrors the backend answer; Results is raw JSON because
// the backend sends {} instead of [] when it has no products.
type generateResponse struct {
	Query             string `json:"query"`
	Results           any    `json:"results"`
	GenerativeSummary string `json:"generative_summary"`
}

func (s *Server) handleGenerateQuery(w http.ResponseWriter, r *http.Request) {
	var req healthsearch.GenerateQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-r.Context().Done():
			return
		}
	}

	writeJSON(w, http.StatusOK, s.answer(req.Text))
}

// answer resolves a query: easter egg, then exact cache hit, then fixture
// match (which is cached for next time), then the failure answer.
func (s *Server) answer(text string) generateResponse {
	query := strings.ToLower(text)

	if query == EasterEggText {
		return generateResponse{Query: EasterEggQuery, Results: struct{}{}, GenerativeSummary: EasterEggSummary}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if hit, ok := s.cache[query]; ok {
		loggy.Debug("cache entry exists", "query", query)
		return generateResponse{Query: hit.graphQuery, Results: hit.results, GenerativeSummary: CachePrefix + hit.summary}
	}

	entry, ok := s.fixtures.Match(query)
	if !ok {
		loggy.Debug("no fixture matches query", "query", query)
		return generateResponse{Query: FailedQuery, Results: struct{}{}, GenerativeSummary: FailedSummary}
	}

	s.addCache(query, cachedResult{graphQuery: entry.GraphQuery, results: entry.Results, summary: entry.Summary})
	return generateResponse{Query: entry.GraphQuery, Results: entry.Results, GenerativeSummary: GeneratedPrefix + entry.Summary}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggy.Warn("failed to encode response", "error", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
