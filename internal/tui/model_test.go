package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/healthsearch/internal/config"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/tildaslashalef/healthsearch/internal/mockapi"
	"github.com/tildaslashalef/healthsearch/internal/search"
)

type fakeSearcher struct {
	health    *healthsearch.HealthResponse
	healthErr error
	resp      *healthsearch.GenerateQueryResponse
	queryErr  error
	queries   []string
	requestID string
}

func (f *fakeSearcher) Health(ctx context.Context) (*healthsearch.HealthResponse, error) {
	return f.health, f.healthErr
}

func (f *fakeSearcher) GenerateQuery(ctx context.Context, text string) (*healthsearch.GenerateQueryResponse, error) {
	f.queries = append(f.queries, text)
	f.requestID = loggy.GetRequestID(ctx)
	return f.resp, f.queryErr
}

func testUIConfig() config.UIConfig {
	return config.UIConfig{
		PageSize:       3,
		FadeDelay:      0,
		CopiedFlash:    time.Second,
		Suggestions:    []string{"Helpful for joint pain", "Products for sleep from the Now Foods brand", "Best rated product for energy", "Supplements that help with anxiety"},
		GlamourStyle:   "notty",
		WordWrap:       80,
		ShowDisclaimer: true,
		ReviewCache:    16,
	}
}

func testProducts() healthsearch.Products {
	return healthsearch.Products{
		{Brand: "NOW Foods", Name: "Magnesium", Rating: 4.5, Reviews: []string{"Helps <span className='annotation'>with sleep</span> a lot"}},
		{Brand: "Doctor's Best", Name: "Glucosamine", Rating: 4.2},
		{Name: "Turmeric", Rating: 3.8},
	}
}

func setupModel(t *testing.T, f *fakeSearcher, ui config.UIConfig) Model {
	t.Helper()
	loggy.NewNoopLogger()

	m := newModel(f, nil, ui, "v0.1.0")
	m = update(t, m, tea.WindowSizeMsg{Width: 130, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func dismissed(t *testing.T, m Model) Model {
	t.Helper()
	m = update(t, m, keyEnter)
	require.False(t, m.State().DisclaimerOpen)
	return m
}

func TestDisclaimer(t *testing.T) {
	m := setupModel(t, &fakeSearcher{}, testUIConfig())

	assert.True(t, m.State().DisclaimerOpen)
	assert.Contains(t, m.View(), DisclaimerButton)

	// Typing does nothing while the modal is open
	m = update(t, m, keyRunes("x"))
	assert.True(t, m.State().DisclaimerOpen)
	assert.Empty(t, m.textarea.Value())

	m = update(t, m, keyEnter)
	assert.False(t, m.State().DisclaimerOpen)
	assert.Contains(t, m.View(), search.WelcomeText)
}

func TestDisclaimerDisabled(t *testing.T) {
	ui := testUIConfig()
	ui.ShowDisclaimer = false
	m := setupModel(t, &fakeSearcher{}, ui)

	assert.False(t, m.State().DisclaimerOpen)
}

func TestViewBeforeResize(t *testing.T) {
	loggy.NewNoopLogger()
	m := newModel(&fakeSearcher{}, nil, testUIConfig(), "")
	assert.Equal(t, "Initializing...\n", m.View())
}

func TestSubmitQuery(t *testing.T) {
	f := &fakeSearcher{
		health: &healthsearch.HealthResponse{Requests: 3, CacheCount: 1},
		resp: &healthsearch.GenerateQueryResponse{
			Query:             "{ Get { Product { name } } }",
			Results:           testProducts(),
			GenerativeSummary: "✨ GENERATED: magnesium is popular",
		},
	}
	m := dismissed(t, setupModel(t, f, testUIConfig()))
	m.textarea.SetValue("  products for sleep ")

	m, cmd := updateCmd(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.State().Loading)
	assert.Equal(t, search.GeneratingText, m.State().GenerativeResult)
	assert.Equal(t, "products for sleep", m.State().Input)

	assert.True(t, strings.HasPrefix(m.queryID, "qry-"))
	msg := generateQuery(m, m.queryID, "products for sleep")()
	assert.Equal(t, []string{"products for sleep"}, f.queries)
	assert.True(t, strings.HasPrefix(f.requestID, "req-"))

	m = update(t, m, msg)
	assert.False(t, m.State().Loading)
	assert.Len(t, m.State().Results, 3)
	assert.Equal(t, FocusResults, m.Focus())
	assert.Contains(t, m.View(), "magnesium is popular")

	m = update(t, m, checkHealth(m)())
	assert.Equal(t, search.Online, m.State().APIStatus)
	assert.Equal(t, 3, m.State().Requests)
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m.textarea.SetValue("sleep")

	m, cmd := updateCmd(t, m, keyEnter)
	require.NotNil(t, cmd)
	require.True(t, m.State().Loading)

	_, cmd = updateCmd(t, m, keyEnter)
	assert.Nil(t, cmd)
}

func TestSubmitEmpty(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))

	m, cmd := updateCmd(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.State().Loading)
	assert.NotEmpty(t, m.statusMsg)
}

func TestQueryError(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m.textarea.SetValue("sleep")
	m = update(t, m, keyEnter)

	m = update(t, m, queryResultMsg{text: "sleep", error: errors.New("connection refused")})
	assert.False(t, m.State().Loading)
	assert.Equal(t, search.ErrorPrefix+"connection refused", m.State().GenerativeResult)
	assert.Equal(t, FocusInput, m.Focus())
}

func TestQueryErrorRechecksHealth(t *testing.T) {
	f := &fakeSearcher{health: &healthsearch.HealthResponse{Requests: 1}}
	m := dismissed(t, setupModel(t, f, testUIConfig()))
	m = update(t, m, checkHealth(m)())
	require.Equal(t, search.Online, m.State().APIStatus)

	// The backend went away between the health check and the query
	f.healthErr = errors.New("connection refused")
	m.textarea.SetValue("sleep")
	m = update(t, m, keyEnter)

	m, cmd := updateCmd(t, m, queryResultMsg{text: "sleep", error: errors.New("connection refused")})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, healthMsg{}, msg)
	m = update(t, m, msg)
	assert.Equal(t, search.Offline, m.State().APIStatus)
}

func TestLogsCarrySessionAndQueryIDs(t *testing.T) {
	var buf bytes.Buffer
	loggy.SetGlobalLogger(loggy.New(&buf, loggy.Config{Level: slog.LevelDebug, Format: "text"}))
	t.Cleanup(func() { loggy.NewNoopLogger() })

	f := &fakeSearcher{queryErr: errors.New("boom")}
	m := newModel(f, nil, testUIConfig(), "test")
	require.True(t, strings.HasPrefix(m.Session(), "ses-"))

	m = update(t, m, tea.WindowSizeMsg{Width: 130, Height: 40})
	m = dismissed(t, m)
	m.textarea.SetValue("sleep")
	m = update(t, m, keyEnter)
	require.True(t, strings.HasPrefix(m.queryID, "qry-"))

	generateQuery(m, m.queryID, "sleep")()

	out := buf.String()
	assert.Contains(t, out, "session_id="+m.Session())
	assert.Contains(t, out, "query_id="+m.queryID)
	assert.Contains(t, out, "request_id="+f.requestID)
	assert.Contains(t, out, "error=boom")
}

func TestHealthOffline(t *testing.T) {
	f := &fakeSearcher{healthErr: errors.New("down")}
	m := dismissed(t, setupModel(t, f, testUIConfig()))

	m = update(t, m, checkHealth(m)())
	assert.Equal(t, search.Offline, m.State().APIStatus)
	assert.Contains(t, m.View(), "Demo Offline")
}

func withResults(t *testing.T, m Model) Model {
	t.Helper()
	m = update(t, m, queryResultMsg{response: &healthsearch.GenerateQueryResponse{
		Query:             "{ Get }",
		Results:           testProducts(),
		GenerativeSummary: "summary",
	}})
	require.Equal(t, FocusResults, m.Focus())
	return m
}

func TestGridNavigation(t *testing.T) {
	m := withResults(t, dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig())))
	require.Equal(t, 2, m.columns())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.State().Cursor)

	// Nothing below the second column
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.State().Cursor)

	m = update(t, m, keyRunes("h"))
	m = update(t, m, keyRunes("j"))
	assert.Equal(t, 2, m.State().Cursor)

	m = update(t, m, keyEnter)
	require.NotNil(t, m.State().Selected)
	assert.Equal(t, "Turmeric", m.State().Selected.Name)
	assert.Contains(t, m.renderDetailContent(), "No ingredients provided.")
	assert.Contains(t, m.renderDetailContent(), "No Brand")

	m = update(t, m, keyEsc)
	assert.Nil(t, m.State().Selected)
}

func TestDetailHighlightsAnnotations(t *testing.T) {
	m := withResults(t, dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig())))
	m = update(t, m, keyEnter)
	require.NotNil(t, m.State().Selected)

	content := m.renderDetailContent()
	assert.Contains(t, content, "with sleep")
	assert.NotContains(t, content, "className")
	assert.Equal(t, 1, m.parser.Len())
}

func TestSidebarToggle(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	require.Equal(t, FocusInput, m.Focus())
	require.Equal(t, 2, m.columns())

	m = update(t, m, keyTab)
	assert.True(t, m.State().SidebarCollapsed)
	assert.Equal(t, FocusResults, m.Focus())
	assert.Equal(t, 3, m.columns())

	m = update(t, m, keyRunes("/"))
	assert.False(t, m.State().SidebarCollapsed)
	assert.Equal(t, FocusInput, m.Focus())
}

func TestCarouselImmediate(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m = update(t, m, keyEsc)

	m = update(t, m, keyRunes("]"))
	assert.Equal(t, 3, m.State().Suggestions.Index())
	m = update(t, m, keyRunes("]"))
	assert.Equal(t, 0, m.State().Suggestions.Index())
	m = update(t, m, keyRunes("["))
	assert.Equal(t, 1, m.State().Suggestions.Index())
}

func TestCarouselFade(t *testing.T) {
	ui := testUIConfig()
	ui.FadeDelay = 10 * time.Millisecond
	m := dismissed(t, setupModel(t, &fakeSearcher{}, ui))
	m = update(t, m, keyEsc)

	m, cmd := updateCmd(t, m, keyRunes("]"))
	require.NotNil(t, cmd)
	assert.True(t, m.State().Fading)
	assert.Equal(t, 0, m.State().Suggestions.Index())

	// A second press during the fade is dropped
	m, cmd2 := updateCmd(t, m, keyRunes("]"))
	assert.Nil(t, cmd2)

	// Stale tick
	m = update(t, m, fadeDoneMsg{seq: m.fadeSeq - 1, dir: dirRight})
	assert.True(t, m.State().Fading)

	m = update(t, m, cmd())
	assert.False(t, m.State().Fading)
	assert.Equal(t, 3, m.State().Suggestions.Index())
}

func TestPickSuggestion(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m = update(t, m, keyEsc)
	require.Equal(t, FocusResults, m.Focus())

	m = update(t, m, keyRunes("2"))
	assert.Equal(t, "Products for sleep from the Now Foods brand", m.textarea.Value())
	assert.Equal(t, FocusInput, m.Focus())

	m = update(t, m, keyEsc)
	m = update(t, m, keyRunes("9"))
	assert.Equal(t, "Products for sleep from the Now Foods brand", m.textarea.Value())
}

func TestPickBindingFollowsPageSize(t *testing.T) {
	tests := []struct {
		pageSize int
		help     string
		bound    []string
		unbound  []string
	}{
		{3, "1-3", []string{"1", "3"}, []string{"4", "9"}},
		{1, "1", []string{"1"}, []string{"2"}},
		{12, "1-9", []string{"1", "9"}, []string{"0"}},
	}

	for _, tt := range tests {
		km := DefaultKeyMap(tt.pageSize)
		assert.Equal(t, tt.help, km.Pick.Help().Key)
		for _, k := range tt.bound {
			assert.True(t, key.Matches(keyRunes(k), km.Pick), "page size %d should bind %s", tt.pageSize, k)
		}
		for _, k := range tt.unbound {
			assert.False(t, key.Matches(keyRunes(k), km.Pick), "page size %d should not bind %s", tt.pageSize, k)
		}
	}

	// Digits past the page do nothing in the results view
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m = update(t, m, keyEsc)
	m = update(t, m, keyRunes("4"))
	assert.Empty(t, m.textarea.Value())
	assert.Equal(t, FocusResults, m.Focus())
}

func TestTypingDoesNotTriggerShortcuts(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))

	for _, r := range "q]1?" {
		m = update(t, m, keyRunes(string(r)))
	}
	assert.Equal(t, "q]1?", m.textarea.Value())
	assert.Equal(t, 0, m.State().Suggestions.Index())
	assert.False(t, m.showHelp)
}

func TestCopyQuery(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))

	// Nothing to copy yet
	m = update(t, m, keyEsc)
	_, cmd := updateCmd(t, m, keyRunes("c"))
	assert.Nil(t, cmd)

	m = update(t, m, queryResultMsg{response: &healthsearch.GenerateQueryResponse{Query: "  { Get }\n", Results: healthsearch.Products{}}})
	m, cmd = updateCmd(t, m, keyRunes("c"))
	require.NotNil(t, cmd)

	m, cmd = updateCmd(t, m, cmd())
	assert.Equal(t, "{ Get }", copied)
	assert.True(t, m.copied)
	assert.Contains(t, m.View(), CopiedText)
	require.NotNil(t, cmd)

	m = update(t, m, copiedExpiredMsg{seq: m.copySeq})
	assert.False(t, m.copied)
}

func TestCopyFailure(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))

	m = update(t, m, copiedMsg{error: errors.New("no clipboard")})
	assert.False(t, m.copied)
	assert.Equal(t, "no clipboard", m.statusMsg)
}

func TestEasterEgg(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m = update(t, m, queryResultMsg{response: &healthsearch.GenerateQueryResponse{
		Query:             mockapi.EasterEggQuery,
		Results:           healthsearch.Products{},
		GenerativeSummary: mockapi.EasterEggSummary,
	}})

	assert.True(t, m.State().IsEasterEgg())
	assert.NotContains(t, m.View(), "Generated Product Summary")
}

func TestQuit(t *testing.T) {
	m := setupModel(t, &fakeSearcher{}, testUIConfig())

	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.ctx.Err())
}

func TestHelpToggle(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m = update(t, m, keyEsc)

	m = update(t, m, keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "use suggestion")
}

func TestNarrowTerminalHidesMainPane(t *testing.T) {
	m := dismissed(t, setupModel(t, &fakeSearcher{}, testUIConfig()))
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})

	assert.Equal(t, 60, m.sidebarWidth())
	assert.Equal(t, 0, m.mainWidth())
	assert.NotContains(t, m.View(), search.WelcomeText)
}

func TestAgainstDemoBackend(t *testing.T) {
	loggy.NewNoopLogger()
	fixtures, err := mockapi.LoadFixtures()
	require.NoError(t, err)
	ts := httptest.NewServer(mockapi.NewServer(fixtures))
	t.Cleanup(ts.Close)

	client := healthsearch.NewClient(config.APIConfig{Endpoint: ts.URL, Timeout: 5 * time.Second})
	m := newModel(client, nil, testUIConfig(), "test")
	m = update(t, m, tea.WindowSizeMsg{Width: 130, Height: 40})
	m = dismissed(t, m)

	m = update(t, m, checkHealth(m)())
	assert.Equal(t, search.Online, m.State().APIStatus)
	assert.Equal(t, 1, m.State().Cached)

	m.textarea.SetValue("Helpful for joint pain")
	m = update(t, m, keyEnter)
	m = update(t, m, generateQuery(m, m.queryID, "Helpful for joint pain")())

	assert.True(t, strings.HasPrefix(m.State().GenerativeResult, mockapi.CachePrefix))
	assert.NotEmpty(t, m.State().Results)
	assert.NotEmpty(t, m.State().TransformedQuery)
}
