package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any 401 response
	ErrUnauthorized = errors.New("not authenticated")
	// ErrNotFound matches any 404 response
	ErrNotFound = errors.New("not found")
)

// APIError is returned for every non-2xx response
type APIError struct {
	StatusCode int
	// Detail is the backend's human-readable message, if any
	Detail string
	Body   string
	Method string
	Path   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Detail)
	}
	if e.Body != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is match the status sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Message returns the text to show a user
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Detail:     parseDetail(body),
		Body:       strings.TrimSpace(string(body)),
		Method:     method,
		Path:       path,
	}
}

// parseDetail extracts {"detail": ...}. Validation errors carry a list of
// objects with a msg field.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return string(payload.Detail)
}
