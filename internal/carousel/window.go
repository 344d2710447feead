package carousel

// Window is a paged view over a fixed list of suggestions
type Window struct {
	items    []string
	pageSize int
	index    int
}

// NewWindow creates a Window starting at offset 0.
// A non-positive pageSize uses PageSize.
func NewWindow(items []string, pageSize int) *Window {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	cp := make([]string, len(items))
	copy(cp, items)
	return &Window{items: cp, pageSize: pageSize}
}

// Left moves one page back and returns the new offset
func (w *Window) Left() int {
	w.index = StepLeft(w.index, len(w.items), w.pageSize)
	return w.index
}

// Right moves one page forward and returns the new offset
func (w *Window) Right() int {
	w.index = StepRight(w.index, len(w.items), w.pageSize)
	return w.index
}

// Visible returns the suggestions on the current page
func (w *Window) Visible() []string {
	if len(w.items) == 0 {
		return nil
	}
	end := min(w.index+w.pageSize, len(w.items))
	return w.items[w.index:end]
}

// At returns the i-th visible suggestion
func (w *Window) At(i int) (string, bool) {
	visible := w.Visible()
	if i < 0 || i >= len(visible) {
		return "", false
	}
	return visible[i], true
}

// Items returns every suggestion
func (w *Window) Items() []string {
	return w.items
}

// Index returns the current offset
func (w *Window) Index() int {
	return w.index
}

// Len returns the number of suggestions
func (w *Window) Len() int {
	return len(w.items)
}

// PageSize returns the number of suggestions per page
func (w *Window) PageSize() int {
	return w.pageSize
}

// Page returns the zero-based page of the current offset
func (w *Window) Page() int {
	return w.index / w.pageSize
}

// Pages returns the number of pages
func (w *Window) Pages() int {
	return (len(w.items) + w.pageSize - 1) / w.pageSize
}

// Replace swaps the suggestion list, keeping the offset when it still
// points at a visible item and rewinding to 0 otherwise
func (w *Window) Replace(items []string) {
	w.items = make([]string, len(items))
	copy(w.items, items)
	if w.index >= len(w.items) {
		w.index = 0
	}
}
