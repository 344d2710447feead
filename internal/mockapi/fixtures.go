package mockapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
)

//go:embed fixtures.json
var fixturesJSON []byte

// Entry is one canned answer of the demo backend
type Entry struct {
	NaturalQuery string                 `json:"natural_query"`
	Keywords     []string               `json:"keywords"`
	GraphQuery   string                 `json:"graph_query"`
	Summary      string                 `json:"summary"`
	Results      []healthsearch.Product `json:"results"`
}

// Fixtures is the data set served by the demo backend
type Fixtures struct {
	Cached  []string `json:"cached"`
	Entries []Entry  `json:"entries"`
}

// LoadFixtures decodes the embedded fixture set
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixturesJSON)
}

// ParseFixtures decodes a fixture set from JSON
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}
	for i := range f.Entries {
		f.Entries[i].NaturalQuery = normalize(f.Entries[i].NaturalQuery)
	}
	return &f, nil
}

// Match finds the entry for query: an exact natural query match wins,
// otherwise the first entry with a keyword contained in the query.
func (f *Fixtures) Match(query string) (*Entry, bool) {
	q := normalize(query)
	for i := range f.Entries {
		if f.Entries[i].NaturalQuery == q {
			return &f.Entries[i], true
		}
	}
	for i := range f.Entries {
		for _, kw := range f.Entries[i].Keywords {
			if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
				return &f.Entries[i], true
			}
		}
	}
	return nil, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
