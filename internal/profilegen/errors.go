package profilegen

import (
	"errors"
	"fmt"
)

// Kind classifies why a generation call failed.
type Kind string

const (
	KindTransport Kind = "transport"
	KindService   Kind = "service"
	KindEmpty     Kind = "empty_response"
	KindMalformed Kind = "malformed_json"
	KindSchema    Kind = "schema_violation"
)

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrTransport = &Error{Kind: KindTransport}
	ErrService   = &Error{Kind: KindService}
	ErrEmpty     = &Error{Kind: KindEmpty}
	ErrMalformed = &Error{Kind: KindMalformed}
	ErrSchema    = &Error{Kind: KindSchema}
)

// Error is returned for every failed generation call.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
	Cause      error
}

func (e *Error) Error() string {
	msg := "profile generation: " + string(e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (http %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of err, or "" when err is not a generation error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func schemaError(format string, args ...any) *Error {
	return &Error{Kind: KindSchema, Detail: fmt.Sprintf(format, args...)}
}
