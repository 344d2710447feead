// Package annotation splits product review text into plain and highlighted
// spans. The backend marks highlighted phrases with a literal HTML span.
package annotation

import (
	"strings"
)

const (
	// OpenMarker starts an annotated phrase
	OpenMarker = "<span className='annotation'>"

	// CloseMarker ends an annotated phrase
	CloseMarker = "</span>"
)

// TextSpan is one contiguous run of review text
type TextSpan struct {
	Text         string `json:"text"`
	IsAnnotation bool   `json:"is_annotation"`
}

// Parse splits review into an ordered list of spans.
//
// The text before the first OpenMarker is always emitted as a plain span,
// even when empty. Every following piece yields an annotated span (up to the
// first CloseMarker) and a plain span for the remainder. A piece without a
// CloseMarker is annotated up to its end and its remainder is empty. All span
// texts are trimmed of surrounding whitespace.
func Parse(review string) []TextSpan {
	pieces := strings.Split(review, OpenMarker)

	spans := make([]TextSpan, 0, 2*len(pieces)-1)
	spans = append(spans, TextSpan{Text: strings.TrimSpace(pieces[0])})

	for _, piece := range pieces[1:] {
		annotated, rest, _ := strings.Cut(piece, CloseMarker)
		spans = append(spans,
			TextSpan{Text: strings.TrimSpace(annotated), IsAnnotation: true},
			TextSpan{Text: strings.TrimSpace(rest)},
		)
	}

	return spans
}

// ParseAll parses every review in order
func ParseAll(reviews []string) [][]TextSpan {
	out := make([][]TextSpan, len(reviews))
	for i, r := range reviews {
		out[i] = Parse(r)
	}
	return out
}

// Text joins the non-empty span texts with single spaces
func Text(spans []TextSpan) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Count returns the number of annotated spans
func Count(spans []TextSpan) int {
	n := 0
	for _, s := range spans {
		if s.IsAnnotation {
			n++
		}
	}
	return n
}

// HasMarkup reports whether review contains any annotation marker
func HasMarkup(review string) bool {
	return strings.Contains(review, OpenMarker)
}
