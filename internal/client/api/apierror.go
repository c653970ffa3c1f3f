package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the normalized form of any non-2xx backend response.
// StatusCode is always set; Code and Message depend on which of the known
// error envelopes the server used.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (status %d, code %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// errorEnvelope covers the three error body shapes the backend is known to
// produce. Extraction priority: error.message, then message, then detail.
type errorEnvelope struct {
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

const fallbackMessage = "something went wrong, please try again"

// normalizeError builds an APIError from a response status and raw body,
// duck-typing the body against the known envelope shapes in priority order.
// Unknown or unparseable bodies fall back to a generic message.
func normalizeError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: fallbackMessage}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}

	switch {
	case env.Error != nil && env.Error.Message != "":
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	case env.Message != "":
		apiErr.Message = env.Message
	case env.Detail != "":
		apiErr.Message = env.Detail
	}
	return apiErr
}

// StatusOf returns the HTTP status carried by err, or 0 if err did not
// originate from an HTTP response (network failure, timeout).
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response. Any 401 anywhere
// must tear the session down.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
