// Package search holds the view-model of the interactive client: every piece
// of UI state lives in one State value owned by a single controller.
package search

import (
	"strings"

	"github.com/tildaslashalef/healthsearch/internal/carousel"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
)

const (
	WelcomeText    = "Welcome to Healthsearch!"
	GeneratingText = "Generating..."
	ErrorPrefix    = "Something went wrong. Please try again! "

	// EasterEggMarker in the generated query switches the result pane to the easter egg
	EasterEggMarker = "Congratulations"
)

// APIStatus is the last known backend reachability
type APIStatus int

const (
	// Offline until a health check succeeds
	Offline APIStatus = iota
	Online
)

func (s APIStatus) String() string {
	if s == Online {
		return "Online"
	}
	return "Offline"
}

// State is the complete UI state. Methods are synchronous and have no
// ordering constraints between them.
type State struct {
	Loading          bool
	APIStatus        APIStatus
	Requests         int
	Cached           int
	CachedQueries    []string
	TransformedQuery string
	Results          []healthsearch.Product
	Selected         *healthsearch.Product
	Cursor           int
	GenerativeResult string
	SidebarCollapsed bool
	DisclaimerOpen   bool
	Suggestions      *carousel.Window
	Fading           bool
	Input            string

	baseSuggestions []string
}

// NewState returns the initial state
func NewState(suggestions []string, pageSize int, showDisclaimer bool) *State {
	base := make([]string, len(suggestions))
	copy(base, suggestions)

	return &State{
		APIStatus:        Offline,
		GenerativeResult: WelcomeText,
		DisclaimerOpen:   showDisclaimer,
		Suggestions:      carousel.NewWindow(base, pageSize),
		baseSuggestions:  base,
	}
}

// BeginQuery marks a query as in flight
func (s *State) BeginQuery(text string) {
	s.Input = text
	s.Loading = true
	s.GenerativeResult = GeneratingText
	s.Results = nil
	s.Cursor = 0
}

// ApplyResult stores a backend answer
func (s *State) ApplyResult(resp *healthsearch.GenerateQueryResponse) {
	s.Loading = false
	if resp == nil {
		return
	}
	s.TransformedQuery = resp.Query
	s.Results = resp.Results
	s.GenerativeResult = resp.GenerativeSummary
	s.Cursor = 0
}

// ApplyError records a failed query
func (s *State) ApplyError(err error) {
	s.Loading = false
	s.Results = nil
	s.Cursor = 0
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	s.GenerativeResult = ErrorPrefix + msg
}

// ApplyHealth records a health check. Counters are only updated on success.
func (s *State) ApplyHealth(h *healthsearch.HealthResponse, err error) {
	if err != nil || h == nil {
		s.APIStatus = Offline
		return
	}

	s.APIStatus = Online
	s.Requests = h.Requests
	s.Cached = h.CacheCount
	s.CachedQueries = h.CacheQueries
	s.Suggestions.Replace(mergeSuggestions(s.baseSuggestions, h.CacheQueries))
}

// mergeSuggestions appends cached queries not already offered, ignoring case
func mergeSuggestions(base, cached []string) []string {
	seen := make(map[string]bool, len(base)+len(cached))
	out := make([]string, 0, len(base)+len(cached))
	for _, list := range [][]string{base, cached} {
		for _, q := range list {
			key := strings.ToLower(strings.TrimSpace(q))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, q)
		}
	}
	return out
}

// Select opens the detail view for Results[i]
func (s *State) Select(i int) bool {
	if i < 0 || i >= len(s.Results) {
		return false
	}
	p := s.Results[i]
	s.Selected = &p
	s.Cursor = i
	return true
}

// SelectCursor opens the product under the grid cursor
func (s *State) SelectCursor() bool {
	return s.Select(s.Cursor)
}

// Back closes the detail view
func (s *State) Back() {
	s.Selected = nil
}

// MoveCursor moves the grid cursor by rows and cols in a grid of width
// columns. Moves that would leave the product list are ignored.
func (s *State) MoveCursor(rows, cols, columns int) {
	if len(s.Results) == 0 || columns <= 0 {
		return
	}
	row, col := s.Cursor/columns, s.Cursor%columns
	row += rows
	col += cols
	if col < 0 || col >= columns || row < 0 {
		return
	}
	if next := Index(row, col, columns); next < len(s.Results) {
		s.Cursor = next
	}
}

// ToggleSidebar collapses or expands the sidebar
func (s *State) ToggleSidebar() {
	s.SidebarCollapsed = !s.SidebarCollapsed
}

// DismissDisclaimer closes the disclaimer modal
func (s *State) DismissDisclaimer() {
	s.DisclaimerOpen = false
}

// SuggestionsLeft pages the carousel back
func (s *State) SuggestionsLeft() int {
	return s.Suggestions.Left()
}

// SuggestionsRight pages the carousel forward
func (s *State) SuggestionsRight() int {
	return s.Suggestions.Right()
}

// UseSuggestion copies the i-th visible suggestion into the input
func (s *State) UseSuggestion(i int) (string, bool) {
	text, ok := s.Suggestions.At(i)
	if ok {
		s.Input = text
	}
	return text, ok
}

// IsEasterEgg reports whether the last answer was the easter egg
func (s *State) IsEasterEgg() bool {
	return strings.Contains(s.TransformedQuery, EasterEggMarker)
}
