package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/tildaslashalef/healthsearch/internal/utils"
)

// copyToClipboard is swapped out in tests
var copyToClipboard = utils.CopyToClipboard

// checkHealth asks the backend for its status and counters.
// It returns a command that will send a healthMsg.
func checkHealth(m Model) tea.Cmd {
	return func() tea.Msg {
		h, err := m.client.Health(m.ctx)
		if err != nil {
			loggy.FromContext(m.ctx).WithError(err).Warn("Health check failed")
		}
		return healthMsg{health: h, error: err}
	}
}

// generateQuery sends the natural language query to the backend. Every log
// line of the call carries queryID.
// It returns a command that will send a queryResultMsg.
func generateQuery(m Model, queryID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx := loggy.WithLogger(m.ctx, loggy.FromContext(m.ctx).With("query_id", queryID))
		ctx = loggy.WithRequestID(ctx, loggy.NewRequestID())
		loggy.FromContext(ctx).Info("Generating query", "text", text)

		resp, err := m.client.GenerateQuery(ctx, text)
		if err != nil {
			loggy.FromContext(ctx).WithError(err).Error("Query generation failed")
		}
		return queryResultMsg{queryID: queryID, text: text, response: resp, error: err}
	}
}

// fadeSuggestions finishes a carousel move after the fade delay
func fadeSuggestions(delay time.Duration, seq int, dir direction) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return fadeDoneMsg{seq: seq, dir: dir}
	})
}

// copyQuery writes the generated query to the clipboard
func copyQuery(query string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{error: copyToClipboard(strings.TrimSpace(query))}
	}
}

// expireCopied hides the copy confirmation after d
func expireCopied(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return copiedExpiredMsg{seq: seq}
	})
}
