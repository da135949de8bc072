package crm

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the CRM.
type APIError struct {
	StatusCode    int    `json:"-"`
	Status        string `json:"status"`
	Category      string `json:"category"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
	Body          string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("crm api: %d %s: %s", e.StatusCode, e.Category, e.Message)
	}
	return fmt.Sprintf("crm api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Retryable reports whether the failure is on the remote side or a rate limit.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// StatusCode extracts the HTTP status from an error chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
