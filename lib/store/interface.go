//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=mocks/mock_store.go -package=mocks

package store

import (
	"context"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the storage contract of the phonebook. A key is a person's name,
// the value the phone number(s) stored for that name.
//
// Implementations must be safe for concurrent use by many connections.
// Concurrent writes to the same key resolve as last write wins.
// All methods return a *Error (nil on success) if the backend fails.
type IStore interface {
	// Lookup returns the value stored for a key. The boolean return value indicates whether a value was found.
	Lookup(ctx context.Context, key string) (value string, found bool, err error)
	// Store inserts or replaces the value for a key. ok is false if the backend refused the write.
	Store(ctx context.Context, key, value string) (ok bool, err error)
	// Remove deletes the value for a key. removed is false if the key was not present.
	Remove(ctx context.Context, key string) (removed bool, err error)
	// Close releases all resources held by the store (connections, files, raft replicas).
	Close() error
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError converts a backend error into a *Error with the given code.
// nil stays nil and errors that already are a *Error are returned unchanged.
func WrapError(code RetCode, op string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*Error); ok {
		return se
	}
	return NewError(code, fmt.Sprintf("%s: %v", op, err))
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidOperation                // 2: Invalid operation.
	RetCUnavailable                     // 3: Backend could not be reached (network, timeout, closed).
	RetCNotFound                        // 4: Key does not exist (only used inside the raft state machine).
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCUnavailable:
		return "Unavailable"
	case RetCNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}
