// errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindConfiguration marks missing or invalid parameters. Raised before any remote call.
	KindConfiguration Kind = iota + 1
	// KindRetrieval marks a failed remote fetch (network, auth, server).
	KindRetrieval
	// KindSynchronizationTimeout marks a waiter that gave up on another request's fetch.
	KindSynchronizationTimeout
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindRetrieval:
		return "RetrievalError"
	case KindSynchronizationTimeout:
		return "SynchronizationTimeoutError"
	default:
		return "ApplicationError"
	}
}

// Error is the common shape of every error raised by the data layer:
// a kind, a human readable message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind, so callers can write
// errors.Is(err, ErrRetrieval) without caring about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrConfiguration          = &Error{Kind: KindConfiguration}
	ErrRetrieval              = &Error{Kind: KindRetrieval}
	ErrSynchronizationTimeout = &Error{Kind: KindSynchronizationTimeout}
)

func NewConfigError(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func NewRetrievalError(message string, cause error) *Error {
	return &Error{Kind: KindRetrieval, Message: message, Err: cause}
}

func NewSynchronizationTimeoutError(message string) *Error {
	return &Error{Kind: KindSynchronizationTimeout, Message: message}
}

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}
