package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents the color theme for the TUI
type Theme struct {
	Primary     lipgloss.AdaptiveColor
	Secondary   lipgloss.AdaptiveColor
	Accent      lipgloss.AdaptiveColor
	Success     lipgloss.AdaptiveColor
	Warning     lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Info        lipgloss.AdaptiveColor
	Subtle      lipgloss.AdaptiveColor
	HighlightLo lipgloss.AdaptiveColor
	HighlightMd lipgloss.AdaptiveColor
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	TextDim     lipgloss.AdaptiveColor
}

// GruvboxTheme creates a new Gruvbox-inspired theme
func GruvboxTheme() Theme {
	return Theme{
		Primary:     lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"}, // green
		Secondary:   lipgloss.AdaptiveColor{Light: "#d65d0e", Dark: "#fe8019"}, // orange
		Accent:      lipgloss.AdaptiveColor{Light: "#b16286", Dark: "#d3869b"}, // purple
		Success:     lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"},
		Warning:     lipgloss.AdaptiveColor{Light: "#d79921", Dark: "#fabd2f"}, // yellow
		Error:       lipgloss.AdaptiveColor{Light: "#cc241d", Dark: "#fb4934"}, // red
		Info:        lipgloss.AdaptiveColor{Light: "#458588", Dark: "#83a598"}, // blue
		Subtle:      lipgloss.AdaptiveColor{Light: "#928374", Dark: "#7c6f64"},
		HighlightLo: lipgloss.AdaptiveColor{Light: "#d5c4a1", Dark: "#3c3836"},
		HighlightMd: lipgloss.AdaptiveColor{Light: "#bdae93", Dark: "#504945"},
		Border:      lipgloss.AdaptiveColor{Light: "#d5c4a1", Dark: "#504945"},
		Text:        lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#fbf1c7"},
		TextDim:     lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#a89984"},
	}
}

// DefaultTheme is the default theme for the TUI
var DefaultTheme = GruvboxTheme()

// dashedBorder mimics the dashed card outlines of the web client
var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
}

// Styles contains predefined styles for the TUI
type Styles struct {
	Banner        lipgloss.Style
	Title         lipgloss.Style
	Paragraph     lipgloss.Style
	Subtle        lipgloss.Style
	Error         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Info          lipgloss.Style
	Spinner       lipgloss.Style
	StatusBar     lipgloss.Style
	BadgeOnline   lipgloss.Style
	BadgeOffline  lipgloss.Style
	Badge         lipgloss.Style
	ConsoleCard   lipgloss.Style
	QueryCard     lipgloss.Style
	SummaryCard   lipgloss.Style
	ProductCard   lipgloss.Style
	ProductActive lipgloss.Style
	DetailCard    lipgloss.Style
	Modal         lipgloss.Style
	ModalButton   lipgloss.Style
	Suggestion    lipgloss.Style
	SuggestionDim lipgloss.Style
	Annotation    lipgloss.Style
	StarFull      lipgloss.Style
	StarEmpty     lipgloss.Style
	Tooltip       lipgloss.Style
}

// DefaultStyles returns default styles for the TUI
func DefaultStyles() Styles {
	theme := DefaultTheme

	card := lipgloss.NewStyle().
		BorderStyle(dashedBorder).
		Padding(0, 1)

	badge := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(theme.Text).
		Background(theme.HighlightMd)

	return Styles{
		Banner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Paragraph: lipgloss.NewStyle().
			Foreground(theme.Text),

		Subtle: lipgloss.NewStyle().
			Foreground(theme.TextDim),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Warning),

		Info: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Text).
			Background(theme.HighlightLo).
			PaddingLeft(1).
			PaddingRight(1),

		BadgeOnline: badge.
			Foreground(theme.HighlightLo).
			Background(theme.Success),

		BadgeOffline: badge.
			Foreground(theme.Text).
			Background(theme.Error),

		Badge: badge,

		ConsoleCard: card.
			BorderForeground(theme.Success),

		QueryCard: card.
			BorderForeground(theme.Info),

		SummaryCard: card.
			BorderForeground(theme.Accent),

		ProductCard: card.
			BorderForeground(theme.Border),

		ProductActive: card.
			BorderForeground(theme.Secondary),

		DetailCard: card.
			BorderForeground(theme.Secondary),

		Modal: lipgloss.NewStyle().
			BorderStyle(dashedBorder).
			BorderForeground(theme.Warning).
			Padding(1, 3).
			Align(lipgloss.Center),

		ModalButton: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(theme.HighlightLo).
			Background(theme.Warning),

		Suggestion: lipgloss.NewStyle().
			Foreground(theme.Text).
			Background(theme.HighlightMd).
			Padding(0, 1),

		SuggestionDim: lipgloss.NewStyle().
			Foreground(theme.Subtle).
			Padding(0, 1),

		Annotation: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Warning),

		StarFull: lipgloss.NewStyle().
			Foreground(theme.Warning),

		StarEmpty: lipgloss.NewStyle().
			Foreground(theme.Subtle),

		Tooltip: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.TextDim),
	}
}
