package healthsearch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyQuery is returned by GenerateQuery for blank input
var ErrEmptyQuery = errors.New("query text cannot be empty")

// APIError is a non-200 answer from the backend
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request might succeed
func (e *APIError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// IsAPIError reports whether err wraps an *APIError and returns it
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
