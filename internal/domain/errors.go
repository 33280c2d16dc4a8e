package domain

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies pipeline failures.
type Kind string

const (
	KindInvalidInput  Kind = "INVALID_INPUT"
	KindInvalidURL    Kind = "INVALID_URL"
	KindAccessBlocked Kind = "ACCESS_BLOCKED"
	KindConversion    Kind = "CONVERSION_FAILED"
	KindProvider      Kind = "PROVIDER_ERROR"
	KindRender        Kind = "RENDER_FAILED"
	KindPersistence   Kind = "PERSISTENCE_FAILED"
)

// Reasons refine a Kind.
const (
	ReasonRateLimited = "rate_limited"
	ReasonTooLarge    = "too_large"
)

// Sentinels for errors.Is; an *Error matches the sentinel of its kind.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidURL    = errors.New("invalid url")
	ErrAccessBlocked = errors.New("access blocked")
	ErrConversion    = errors.New("conversion failed")
	ErrProvider      = errors.New("provider error")
	ErrRender        = errors.New("render failed")
	ErrPersistence   = errors.New("persistence failed")
)

var sentinels = map[Kind]error{
	KindInvalidInput:  ErrInvalidInput,
	KindInvalidURL:    ErrInvalidURL,
	KindAccessBlocked: ErrAccessBlocked,
	KindConversion:    ErrConversion,
	KindProvider:      ErrProvider,
	KindRender:        ErrRender,
	KindPersistence:   ErrPersistence,
}

// Error is a classified failure with a user-facing message.
type Error struct {
	Kind      Kind
	Reason    string
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinel.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// NewError creates a classified error.
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause, Timestamp: time.Now()}
}

// WithReason sets the reason and returns e.
func (e *Error) WithReason(reason string) *Error {
	e.Reason = reason
	return e
}

func NewInvalidInput(message string, cause error) *Error {
	return NewError(KindInvalidInput, message, cause)
}

func NewInvalidURL(message string, cause error) *Error {
	return NewError(KindInvalidURL, message, cause)
}

func NewAccessBlocked(message string, cause error) *Error {
	return NewError(KindAccessBlocked, message, cause)
}

func NewConversion(message string, cause error) *Error {
	return NewError(KindConversion, message, cause)
}

func NewProvider(message string, cause error) *Error {
	return NewError(KindProvider, message, cause)
}

func NewRender(message string, cause error) *Error {
	return NewError(KindRender, message, cause)
}

func NewPersistence(message string, cause error) *Error {
	return NewError(KindPersistence, message, cause)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// UserMessage returns the message suitable for an API response.
func UserMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	if err == nil {
		return ""
	}
	return "internal error"
}

// RateLimitError is returned by generative providers when the quota is hit.
// RetryAfter is zero when the provider did not suggest a delay.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}
