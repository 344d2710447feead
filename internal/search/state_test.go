package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
)

var suggestions = []string{
	"Helpful for joint pain",
	"Products for sleep from the Now Foods brand",
	"Best rated product for energy",
	"Good for digestion",
}

func products(n int) []healthsearch.Product {
	out := make([]healthsearch.Product, n)
	for i := range out {
		out[i] = healthsearch.Product{Name: string(rune('A' + i)), Rating: float64(i % 6)}
	}
	return out
}

func TestNewState(t *testing.T) {
	s := NewState(suggestions, 3, true)

	assert.Equal(t, WelcomeText, s.GenerativeResult)
	assert.Equal(t, Offline, s.APIStatus)
	assert.True(t, s.DisclaimerOpen)
	assert.False(t, s.Loading)
	assert.Equal(t, suggestions[:3], s.Suggestions.Visible())

	s.DismissDisclaimer()
	assert.False(t, s.DisclaimerOpen)
}

func TestQueryLifecycle(t *testing.T) {
	s := NewState(suggestions, 3, false)
	s.Results = products(2)
	s.Cursor = 1

	s.BeginQuery("sleep")
	assert.True(t, s.Loading)
	assert.Equal(t, GeneratingText, s.GenerativeResult)
	assert.Empty(t, s.Results)
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, "sleep", s.Input)

	s.ApplyResult(&healthsearch.GenerateQueryResponse{
		Query:             "{ Get }",
		Results:           products(4),
		GenerativeSummary: "done",
	})
	assert.False(t, s.Loading)
	assert.Equal(t, "{ Get }", s.TransformedQuery)
	assert.Len(t, s.Results, 4)
	assert.Equal(t, "done", s.GenerativeResult)
	assert.False(t, s.IsEasterEgg())
}

func TestApplyError(t *testing.T) {
	s := NewState(suggestions, 3, false)
	s.BeginQuery("x")
	s.Results = products(3)

	s.ApplyError(errors.New("connection refused"))
	assert.False(t, s.Loading)
	assert.Empty(t, s.Results)
	assert.Equal(t, "Something went wrong. Please try again! connection refused", s.GenerativeResult)
}

func TestApplyHealth(t *testing.T) {
	s := NewState(suggestions, 3, false)

	s.ApplyHealth(&healthsearch.HealthResponse{
		Requests:     7,
		CacheCount:   2,
		CacheQueries: []string{"helpful for joint pain", "vitamins for hair"},
	}, nil)
	assert.Equal(t, Online, s.APIStatus)
	assert.Equal(t, "Online", s.APIStatus.String())
	assert.Equal(t, 7, s.Requests)
	assert.Equal(t, 2, s.Cached)
	assert.Equal(t, append(append([]string{}, suggestions...), "vitamins for hair"), s.Suggestions.Items(),
		"cached queries are appended without case-insensitive duplicates")

	s.ApplyHealth(nil, errors.New("down"))
	assert.Equal(t, Offline, s.APIStatus)
	assert.Equal(t, 7, s.Requests, "counters survive a failed check")
	assert.Equal(t, 2, s.Cached)
}

func TestSelectAndBack(t *testing.T) {
	s := NewState(suggestions, 3, false)
	s.Results = products(3)

	assert.False(t, s.Select(3))
	assert.False(t, s.Select(-1))
	assert.Nil(t, s.Selected)

	require.True(t, s.Select(2))
	assert.Equal(t, "C", s.Selected.Name)
	assert.Equal(t, 2, s.Cursor)

	s.Back()
	assert.Nil(t, s.Selected)

	s.Cursor = 1
	require.True(t, s.SelectCursor())
	assert.Equal(t, "B", s.Selected.Name)
}

func TestMoveCursor(t *testing.T) {
	s := NewState(suggestions, 3, false)
	s.Results = products(5)

	s.MoveCursor(0, 1, 3)
	assert.Equal(t, 1, s.Cursor)
	s.MoveCursor(1, 0, 3)
	assert.Equal(t, 4, s.Cursor)
	s.MoveCursor(0, 1, 3)
	assert.Equal(t, 4, s.Cursor, "cell (1,2) is past the end")
	s.MoveCursor(1, 0, 3)
	assert.Equal(t, 4, s.Cursor, "no row below")
	s.MoveCursor(-1, -1, 3)
	assert.Equal(t, 0, s.Cursor, "diagonal moves apply both deltas")
	s.MoveCursor(-1, 0, 3)
	assert.Equal(t, 0, s.Cursor, "no row above 0")
	s.MoveCursor(0, -2, 3)
	assert.Equal(t, 0, s.Cursor, "no column left of 0")
}

func TestSuggestions(t *testing.T) {
	s := NewState(suggestions, 3, false)

	assert.Equal(t, 3, s.SuggestionsRight())
	text, ok := s.UseSuggestion(0)
	require.True(t, ok)
	assert.Equal(t, "Good for digestion", text)
	assert.Equal(t, text, s.Input)

	_, ok = s.UseSuggestion(1)
	assert.False(t, ok)

	assert.Equal(t, 0, s.SuggestionsLeft())
	assert.Equal(t, 1, s.SuggestionsLeft())
}

func TestSidebarAndEasterEgg(t *testing.T) {
	s := NewState(suggestions, 3, false)

	s.ToggleSidebar()
	assert.True(t, s.SidebarCollapsed)
	s.ToggleSidebar()
	assert.False(t, s.SidebarCollapsed)

	s.ApplyResult(&healthsearch.GenerateQueryResponse{Query: "🚀 Congratulations, you rolled the demo!", Results: healthsearch.Products{}})
	assert.True(t, s.IsEasterEgg())
}
