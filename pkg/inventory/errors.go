package inventory

import (
	"context"
	"errors"
	"fmt"
)

// APIError is a structured error body returned by the server. Its Message is
// meant to be shown to the user verbatim.
type APIError struct {
	Status  int    `json:"status"`
	Reason  string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsCanceled reports whether err stems from a canceled or superseded request.
// Canceled requests are routine and must never surface as user-facing errors.
// Deadline expiry is deliberately excluded: a timeout is a real failure and
// goes through the normal error path.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
