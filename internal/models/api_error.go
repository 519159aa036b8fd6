package models

import "time"

// APIError is the error body returned by every failing endpoint.
type APIError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// NewAPIError builds an APIError stamped with the current time.
func NewAPIError(status int, reason, message, path string) APIError {
	return APIError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     reason,
		Message:   message,
		Path:      path,
	}
}
