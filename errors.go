package klingo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// ErrKind classifies an API failure into a closed set of categories.
type ErrKind string

const (
	ErrKindAuthentication ErrKind = "authentication"
	ErrKindNotFound       ErrKind = "not_found"
	ErrKindRateLimited    ErrKind = "rate_limited"
	ErrKindValidation     ErrKind = "validation"
	ErrKindServer         ErrKind = "server_error"
	ErrKindTimeout        ErrKind = "timeout"
	ErrKindDecode         ErrKind = "decode"
	ErrKindAPI            ErrKind = "api_error"
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError represents a classified error from the Kling API or transport layer.
type APIError struct {
	Kind       ErrKind       `json:"kind"`
	StatusCode int           `json:"status_code,omitempty"`
	Code       int           `json:"code,omitempty"` // application-level error code from the response envelope
	Message    string        `json:"message"`
	RequestID  string        `json:"request_id,omitempty"`
	RetryAfter time.Duration `json:"-"`                // set for rate_limited when the server supplied Retry-After
	Fields     []FieldError  `json:"fields,omitempty"` // set for validation errors
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("kling: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("kling: %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the error is transient and worth retrying.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case ErrKindRateLimited, ErrKindServer, ErrKindTimeout:
		return true
	}
	return false
}

// TaskFailedError is returned when a task reached the failed terminal state.
type TaskFailedError struct {
	TaskID        string
	StatusMessage string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("kling: task %s failed: %s", e.TaskID, e.StatusMessage)
}

// TaskCancelledError is returned when a task was cancelled before completion.
type TaskCancelledError struct {
	TaskID string
}

func (e *TaskCancelledError) Error() string {
	return fmt.Sprintf("kling: task %s was cancelled", e.TaskID)
}

// errorEnvelope is the JSON body the API attaches to non-2xx responses.
type errorEnvelope struct {
	Code      int          `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id"`
	Errors    []FieldError `json:"errors"`
}

// classifyStatus maps a non-2xx HTTP response to an APIError. Pure function
// of the status code, headers and body.
func classifyStatus(statusCode int, header http.Header, body []byte) *APIError {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env) // best effort, the body may not be JSON

	msg := env.Message
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Code:       env.Code,
		Message:    msg,
		RequestID:  env.RequestID,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		apiErr.Kind = ErrKindAuthentication
	case statusCode == http.StatusNotFound:
		apiErr.Kind = ErrKindNotFound
	case statusCode == http.StatusTooManyRequests:
		apiErr.Kind = ErrKindRateLimited
		apiErr.RetryAfter = retryAfter(header)
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		apiErr.Kind = ErrKindValidation
		apiErr.Fields = env.Errors
	case statusCode >= 500:
		apiErr.Kind = ErrKindServer
	default:
		apiErr.Kind = ErrKindAPI
	}
	return apiErr
}

// classifyTransport maps a failed round trip (connection error, timeout,
// cancelled context) to an APIError.
func classifyTransport(err error) *APIError {
	msg := "request failed: " + err.Error()

	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		msg = "request timed out: " + err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		msg = "request deadline exceeded"
	}
	return &APIError{Kind: ErrKindTimeout, Message: msg}
}

// decodeError wraps a malformed body on an otherwise successful response.
func decodeError(err error) *APIError {
	return &APIError{Kind: ErrKindDecode, Message: "failed to decode response: " + err.Error()}
}

const defaultRetryAfter = 5 * time.Second

func retryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}
