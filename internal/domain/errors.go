package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrNetwork           = errors.New("network error")
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrMissingData       = errors.New("missing data")
	ErrMalformedTemplate = errors.New("malformed template")
)

// NetworkError describes a failed call to the legacy project API.
// StatusCode is zero when the request never got a response.
type NetworkError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	var b strings.Builder
	b.WriteString("network: ")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "status %d", e.StatusCode)
		if e.Message != "" {
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		if e.StatusCode != 0 || e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports ErrNetwork so callers can match on the sentinel while
// Unwrap still exposes the transport cause.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

func (e *NetworkError) Unwrap() error { return e.Err }

// UnknownLanguageError is returned when a language argument matches no
// entry in the language table.
type UnknownLanguageError struct {
	Input    string
	Accepted []string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language %q; language must be one of: %s", e.Input, strings.Join(e.Accepted, ", "))
}

func (e *UnknownLanguageError) Unwrap() error { return ErrUnknownLanguage }

// NewConfigurationError wraps ErrConfiguration with a formatted message.
func NewConfigurationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// NewMissingDataError wraps ErrMissingData with a formatted message.
func NewMissingDataError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissingData, fmt.Sprintf(format, args...))
}

// NewMalformedTemplateError wraps ErrMalformedTemplate with a formatted message.
func NewMalformedTemplateError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedTemplate, fmt.Sprintf(format, args...))
}
