package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/captal-web/internal/errors"
)

// APIError is a non-2xx response from the API. Message holds the server's
// "message" field when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets callers match API failures against the package sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case apperrors.ErrNotAuthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case apperrors.ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    messageFromBody(body),
		Body:       body,
	}
}

// messageFromBody accepts {"message": "..."} and validation style {"message": ["...", "..."]}
func messageFromBody(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}

// StatusCode returns the HTTP status of an API failure, 0 for any other error
func StatusCode(err error) int {
	var apiErr *APIError
	if apperrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ServerMessage returns the server supplied message of an API failure, if any
func ServerMessage(err error) string {
	var apiErr *APIError
	if apperrors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
