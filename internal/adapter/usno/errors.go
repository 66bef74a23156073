package usno

import "fmt"

// APIError represents a non-200 answer from the USNO API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("usno API error %d: %s", e.StatusCode, e.Message)
}
