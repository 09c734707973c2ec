package models

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds surfaced by ledger operations.
var (
	ErrNoContract  = errors.New("NO_CONTRACT")
	ErrNetwork     = errors.New("NETWORK_ERROR")
	ErrTimeout     = errors.New("TIMEOUT")
	ErrTokenExists = errors.New("TOKEN_EXISTS")

	ErrInvalidAddress = errors.New("INVALID_ADDRESS")
)

// Error attaches a kind to the underlying cause.
type Error struct {
	Kind error
	Err  error
}

// NewError wraps err with the given kind.
func NewError(kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// KindOf returns the kind sentinel carried by err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{ErrNoContract, ErrTimeout, ErrNetwork, ErrTokenExists, ErrInvalidAddress} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

// TransportError classifies a failed network call as TIMEOUT or NETWORK_ERROR.
func TransportError(err error) error {
	if err == nil {
		return nil
	}

	var timeout interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &timeout) && timeout.Timeout()) {
		return NewError(ErrTimeout, err)
	}

	return NewError(ErrNetwork, err)
}
