package utils

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard copies the given text to the system clipboard
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available (install xclip, xsel or wl-clipboard)")
	}
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// Truncate shortens s to at most width runes, ending with an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// OneLine collapses all whitespace runs, newlines included, into single spaces
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
