package analyzer

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrEmptyResponse indicates the transport envelope decoded cleanly but
// carried no text payload (no candidates or no parts).
var ErrEmptyResponse = errors.New("model response was empty: no text payload")

// TransportError indicates a non-2xx status from the model endpoint.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model request failed with status %d", e.StatusCode)
}

// CredentialError is the 403 specialization of TransportError. The message
// must mention the key, not a generic transport failure.
type CredentialError struct {
	StatusCode int
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("model request failed with status %d: the API key is likely invalid or has usage restrictions", e.StatusCode)
}

// MalformedPayloadError indicates the envelope or the model's text payload
// could not be decoded as JSON.
type MalformedPayloadError struct {
	Err error
	Raw string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("model returned non-parsable JSON: %v (raw: %s)", e.Err, truncate(e.Raw, 500))
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// SchemaViolationError indicates a decoded payload that does not satisfy
// the response contract. ClauseIndex is -1 for top-level fields.
type SchemaViolationError struct {
	Field       string
	ClauseIndex int
}

func (e *SchemaViolationError) Error() string {
	if e.ClauseIndex < 0 {
		return fmt.Sprintf("model response violates schema: missing or invalid %q", e.Field)
	}
	return fmt.Sprintf("model response violates schema: clause %d missing or invalid %q", e.ClauseIndex, e.Field)
}

// RateLimitError indicates the model endpoint returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("model rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
