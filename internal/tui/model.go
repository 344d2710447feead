// Package tui provides the interactive terminal client for Healthsearch
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/tildaslashalef/healthsearch/internal/annotation"
	"github.com/tildaslashalef/healthsearch/internal/app"
	"github.com/tildaslashalef/healthsearch/internal/config"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/tildaslashalef/healthsearch/internal/search"
	"github.com/tildaslashalef/healthsearch/internal/ulid"
)

// Model represents the TUI model
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	client  Searcher
	parser  *annotation.Parser
	ui      config.UIConfig
	version string

	session string
	queryID string
	keys    KeyMap

	state *search.State
	focus Focus

	width    int
	height   int
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	showHelp bool
	styles   Styles
	renderer *glamour.TermRenderer

	fadeSeq   int
	copied    bool
	copySeq   int
	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model from the application services
func NewModel(application *app.App) Model {
	return newModel(application.Client, application.Parser, application.Config.UI, application.Version)
}

func newModel(client Searcher, parser *annotation.Parser, ui config.UIConfig, version string) Model {
	styles := DefaultStyles()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	h := help.New()
	h.ShowAll = false

	ta := textarea.New()
	ta.Placeholder = "Helpful for joint pain"
	ta.ShowLineNumbers = false
	ta.CharLimit = 500
	ta.SetHeight(3)
	ta.Focus()

	if parser == nil {
		parser = annotation.NewParser(ui.ReviewCache)
	}

	session := ulid.SessionID()
	ctx, cancel := context.WithCancel(loggy.WithLogger(context.Background(), loggy.With("session_id", session)))
	state := search.NewState(ui.Suggestions, ui.PageSize, ui.ShowDisclaimer)

	vp := viewport.New(10, 10)
	vp.Style = styles.Paragraph

	return Model{
		ctx:      ctx,
		cancel:   cancel,
		client:   client,
		parser:   parser,
		ui:       ui,
		version:  version,
		session:  session,
		keys:     DefaultKeyMap(state.Suggestions.PageSize()),
		state:    state,
		focus:    FocusInput,
		textarea: ta,
		viewport: vp,
		spinner:  s,
		help:     h,
		styles:   styles,
		renderer: newRenderer(ui.GlamourStyle, ui.WordWrap),
	}
}

// newRenderer builds the markdown renderer used for the query and summary cards
func newRenderer(style string, wrap int) *glamour.TermRenderer {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		loggy.Warn("Failed to create markdown renderer, falling back to plain text", "style", style, "error", err)
		return nil
	}
	return r
}

// State exposes the view-model, mainly for tests
func (m Model) State() *search.State {
	return m.state
}

// Session returns the ID tagging every log line of this TUI session
func (m Model) Session() string {
	return m.session
}

// Focus returns the focused screen area
func (m Model) Focus() Focus {
	return m.focus
}
