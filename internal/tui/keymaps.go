package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// maxPick is the highest suggestion number reachable with a single key
const maxPick = 9

// KeyMap defines the key bindings for the TUI
type KeyMap struct {
	Help          key.Binding
	Quit          key.Binding
	Submit        key.Binding
	FocusInput    key.Binding
	Back          key.Binding
	ToggleSidebar key.Binding
	PrevPage      key.Binding
	NextPage      key.Binding
	Pick          key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Copy          key.Binding
	Refresh       key.Binding
}

// DefaultKeyMap returns the default key map. Pick covers one carousel page
// of pageSize suggestions.
func DefaultKeyMap(pageSize int) KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate / open"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "edit query"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle sidebar"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous suggestions"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next suggestions"),
		),
		Pick: pickBinding(pageSize),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy query"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "check backend"),
		),
	}
}

// pickBinding binds the digits 1..pageSize, capped at maxPick
func pickBinding(pageSize int) key.Binding {
	n := min(max(pageSize, 1), maxPick)

	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i + 1)
	}

	helpKey := "1"
	if n > 1 {
		helpKey = "1-" + keys[n-1]
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, "use suggestion"),
	)
}

// ShortHelp returns the short help text for the help bubble
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Submit, k.FocusInput, k.ToggleSidebar}
}

// FullHelp returns the full help text for the help bubble
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Help, k.Quit, k.Submit, k.Back},
		{k.FocusInput, k.ToggleSidebar, k.Copy, k.Refresh},
		{k.PrevPage, k.NextPage, k.Pick},
		{k.Up, k.Down, k.Left, k.Right},
	}
}
