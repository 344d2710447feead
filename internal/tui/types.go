package tui

import (
	"context"

	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
)

// Searcher is the backend the TUI talks to
type Searcher interface {
	Health(ctx context.Context) (*healthsearch.HealthResponse, error)
	GenerateQuery(ctx context.Context, text string) (*healthsearch.GenerateQueryResponse, error)
}

// Focus tells which part of the screen receives key presses
type Focus int

const (
	// FocusInput routes keys to the query textarea
	FocusInput Focus = iota
	// FocusResults enables the navigation shortcuts
	FocusResults
)

func (f Focus) String() string {
	if f == FocusInput {
		return "input"
	}
	return "results"
}

// direction of a pending carousel move
type direction int

const (
	dirLeft direction = iota - 1
	_
	dirRight
)
