package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/tildaslashalef/healthsearch/internal/search"
	"github.com/tildaslashalef/healthsearch/internal/ulid"
)

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	// --- Core Bubble Tea Messages ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.ready = true
		loggy.Debug("Window resized", "width", m.width, "height", m.height, "columns", m.columns())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// --- Custom Message Handling ---
	case healthMsg:
		m.state.ApplyHealth(msg.health, msg.error)
		loggy.Debug("Applied health check", "status", m.state.APIStatus, "requests", m.state.Requests, "cached", m.state.Cached)
		return m, nil

	case queryResultMsg:
		if msg.error != nil {
			m.state.ApplyError(msg.error)
			// The badge follows the backend after a failed query
			return m, checkHealth(m)
		}
		m.state.ApplyResult(msg.response)
		loggy.FromContext(m.ctx).Info("Query generated", "query_id", msg.queryID, "text", msg.text,
			"results", len(m.state.Results), "easter_egg", m.state.IsEasterEgg())
		if len(m.state.Results) > 0 {
			m.focus = FocusResults
			m.textarea.Blur()
		}
		return m, nil

	case fadeDoneMsg:
		if msg.seq != m.fadeSeq || !m.state.Fading {
			return m, nil
		}
		m.stepSuggestions(msg.dir)
		m.state.Fading = false
		return m, nil

	case copiedMsg:
		if msg.error != nil {
			loggy.Warn("Copy to clipboard failed", "error", msg.error)
			m.statusMsg = msg.error.Error()
			return m, nil
		}
		m.copied = true
		m.copySeq++
		return m, expireCopied(m.ui.CopiedFlash, m.copySeq)

	case copiedExpiredMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil
	}

	// Cursor blink and other textarea internals
	if m.focus == FocusInput {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	return m, cmd
}

// handleKey routes a key press to the modal, the input or the results
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.state.DisclaimerOpen {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.state.DismissDisclaimer()
			loggy.Debug("Disclaimer dismissed")
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	if m.focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleResultsKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case msg.Type == tea.KeyEsc:
		m.focus = FocusResults
		m.textarea.Blur()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.toggleSidebar()
		return m, nil
	}

	m.textarea, cmd = m.textarea.Update(msg)
	m.state.Input = m.textarea.Value()
	return m, cmd
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.toggleSidebar()
		return m, nil

	case key.Matches(msg, m.keys.FocusInput):
		if m.state.SidebarCollapsed {
			m.toggleSidebar()
		}
		m.focus = FocusInput
		return m, m.textarea.Focus()

	case key.Matches(msg, m.keys.Back):
		m.state.Back()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		return m.startFade(dirLeft)

	case key.Matches(msg, m.keys.NextPage):
		return m.startFade(dirRight)

	case key.Matches(msg, m.keys.Pick):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		text, ok := m.state.UseSuggestion(n - 1)
		if !ok {
			return m, nil
		}
		m.textarea.SetValue(text)
		m.focus = FocusInput
		if m.state.SidebarCollapsed {
			m.toggleSidebar()
		}
		return m, m.textarea.Focus()

	case key.Matches(msg, m.keys.Copy):
		if strings.TrimSpace(m.state.TransformedQuery) == "" {
			return m, nil
		}
		return m, copyQuery(m.state.TransformedQuery)

	case key.Matches(msg, m.keys.Refresh):
		return m, checkHealth(m)
	}

	// Detail view scrolls, the grid moves its cursor
	if m.state.Selected != nil {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	cols := m.columns()
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.state.SelectCursor() {
			loggy.Debug("Opened product", "index", m.state.Cursor, "name", m.state.Selected.Name)
			m.viewport.SetContent(m.renderDetailContent())
			m.viewport.GotoTop()
		}
	case key.Matches(msg, m.keys.Up):
		m.state.MoveCursor(-1, 0, cols)
	case key.Matches(msg, m.keys.Down):
		m.state.MoveCursor(1, 0, cols)
	case key.Matches(msg, m.keys.Left):
		m.state.MoveCursor(0, -1, cols)
	case key.Matches(msg, m.keys.Right):
		m.state.MoveCursor(0, 1, cols)
	}
	return m, nil
}

// submit starts a query unless one is already running
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state.Loading {
		loggy.Debug("Query already in flight, ignoring submit")
		return m, nil
	}

	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		m.statusMsg = "Type a query or pick a suggestion first"
		return m, nil
	}

	m.statusMsg = ""
	m.queryID = ulid.QueryID()
	m.state.Back()
	m.state.BeginQuery(text)

	return m, tea.Batch(
		m.spinner.Tick,
		checkHealth(m),
		generateQuery(m, m.queryID, text),
	)
}

// startFade begins a carousel move. With no fade delay the move is immediate.
func (m Model) startFade(dir direction) (tea.Model, tea.Cmd) {
	if m.state.Fading {
		return m, nil
	}
	if m.ui.FadeDelay <= 0 {
		m.stepSuggestions(dir)
		return m, nil
	}

	m.fadeSeq++
	m.state.Fading = true
	return m, fadeSuggestions(m.ui.FadeDelay, m.fadeSeq, dir)
}

func (m *Model) stepSuggestions(dir direction) {
	if dir == dirLeft {
		m.state.SuggestionsLeft()
	} else {
		m.state.SuggestionsRight()
	}
}

func (m *Model) toggleSidebar() {
	m.state.ToggleSidebar()
	if m.state.SidebarCollapsed && m.focus == FocusInput {
		m.focus = FocusResults
		m.textarea.Blur()
	}
	m.resize()
}

// resize recomputes widget sizes after a window or layout change
func (m *Model) resize() {
	if sw := m.sidebarWidth(); sw > 0 {
		m.textarea.SetWidth(max(sw-6, 10))
	}
	m.viewport.Width = m.mainWidth()
	m.viewport.Height = max(m.height-footerHeight, 1)
	if m.state.Selected != nil {
		m.viewport.SetContent(m.renderDetailContent())
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	loggy.Info("Quit key pressed, shutting down TUI")
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// columns returns the product grid width for the main pane
func (m Model) columns() int {
	return search.ColumnsForWidth(m.mainWidth())
}
