package healthsearch

import (
	"bytes"
	"encoding/json"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Message      string   `json:"message"`
	Requests     int      `json:"requests"`
	CacheCount   int      `json:"cache_count"`
	CacheQueries []string `json:"cache_queries"`
}

// GenerateQueryRequest is the body of POST /generate_query
type GenerateQueryRequest struct {
	Text string `json:"text"`
}

// GenerateQueryResponse is the answer to POST /generate_query
type GenerateQueryResponse struct {
	Query             string   `json:"query"`
	Results           Products `json:"results"`
	GenerativeSummary string   `json:"generative_summary"`
}

// Product is one search hit
type Product struct {
	Brand       string   `json:"brand"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	Ingredients string   `json:"ingredients"`
	Description string   `json:"description"`
	Summary     string   `json:"summary"`
	Effects     string   `json:"effects"`
	Reviews     []string `json:"reviews"`
	Image       string   `json:"image"`
	Distance    float64  `json:"distance"`
}

// Products decodes a JSON array of products. The backend answers with an
// empty object instead of an array when there is nothing to show, so an
// object or null decodes as an empty list.
type Products []Product

// UnmarshalJSON implements json.Unmarshaler
func (p *Products) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*p = Products{}
		return nil
	}

	var list []Product
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*p = list
	return nil
}
