// Package carousel computes paging offsets for the suggestion carousel.
package carousel

// PageSize is the number of suggestions shown at once
const PageSize = 3

// StepLeft returns the offset one page before current, wrapping from the
// first page to the last full page. The result is never negative.
func StepLeft(current, total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	if current == 0 {
		return max(total-pageSize, 0)
	}
	return max(current-pageSize, 0)
}

// StepRight returns the offset one page after current, wrapping to 0 once
// the next page would start at or past total.
func StepRight(current, total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	if current+pageSize >= total {
		return 0
	}
	return current + pageSize
}
