package tui

import (
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
)

// healthMsg carries the outcome of a health check
type healthMsg struct {
	health *healthsearch.HealthResponse
	error  error
}

// queryResultMsg carries the outcome of a query generation
type queryResultMsg struct {
	queryID  string
	text     string
	response *healthsearch.GenerateQueryResponse
	error    error
}

// fadeDoneMsg ends a carousel fade. Stale ticks are dropped by seq.
type fadeDoneMsg struct {
	seq int
	dir direction
}

// copiedMsg reports a clipboard write
type copiedMsg struct {
	error error
}

// copiedExpiredMsg hides the "Copied to clipboard" flash
type copiedExpiredMsg struct {
	seq int
}
