package evaluate

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// User-facing messages. Upstream detail never reaches the caller.
const (
	MsgPromptRequired = "Prompt is required"
	MsgInvalidBody    = "Invalid request body"
	MsgParseFailure   = "Failed to parse evaluation response"
	MsgRateLimited    = "Too many requests. Please try again in a moment."
	MsgConfigError    = "API configuration error. Please check your setup."
	MsgUpstreamError  = "Failed to evaluate prompt. Please try again."
)

// outcome labels for metrics
const (
	outcomeOK            = "ok"
	outcomeBadRequest    = "bad_request"
	outcomeParseError    = "parse_error"
	outcomeRateLimited   = "rate_limited"
	outcomeConfigError   = "config_error"
	outcomeUpstreamError = "upstream_error"
)

// Error is an evaluation failure classified for the caller: Status is the HTTP status to
// respond with and Message the text shown to the end user.
type Error struct {
	Status  int
	Message string
	Err     error

	outcome string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errPromptRequired() *Error {
	return &Error{Status: http.StatusBadRequest, Message: MsgPromptRequired, outcome: outcomeBadRequest}
}

func errParse(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: MsgParseFailure, Err: err, outcome: outcomeParseError}
}

// classifyUpstream maps a failed model call onto the caller-facing taxonomy. The message
// substrings are what the model API puts in its error bodies; status codes cover the cases
// where the body wording differs.
func classifyUpstream(err error) *Error {
	status := 0
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	msg := err.Error()

	switch {
	case strings.Contains(msg, "rate_limit") || status == http.StatusTooManyRequests:
		return &Error{Status: http.StatusTooManyRequests, Message: MsgRateLimited, Err: err, outcome: outcomeRateLimited}
	case strings.Contains(msg, "api_key") || status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Status: http.StatusServiceUnavailable, Message: MsgConfigError, Err: err, outcome: outcomeConfigError}
	default:
		return &Error{Status: http.StatusInternalServerError, Message: MsgUpstreamError, Err: err, outcome: outcomeUpstreamError}
	}
}

// AsError reports the classified failure behind err. Anything unclassified is a generic
// upstream failure.
func AsError(err error) *Error {
	var evalErr *Error
	if errors.As(err, &evalErr) {
		return evalErr
	}
	return &Error{Status: http.StatusInternalServerError, Message: MsgUpstreamError, Err: err, outcome: outcomeUpstreamError}
}
