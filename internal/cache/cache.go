// Package cache provides the key/value store used to memoize authenticated
// sessions. Values are stored as JSON; expiration is enforced by callers,
// not by the store contract.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// ErrorReason classifies store failures.
type ErrorReason string

const (
	ReasonReadFailed   ErrorReason = "READ_FAILED"
	ReasonWriteFailed  ErrorReason = "WRITE_FAILED"
	ReasonDeleteFailed ErrorReason = "DELETE_FAILED"
)

// Error tags a store failure with its reason and underlying cause.
type Error struct {
	Reason ErrorReason
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cache %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cache %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(reason ErrorReason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// Store is a raw byte-oriented key/value backend. Read returns (nil, nil)
// on a missing key; a miss is never an error. Deleting an absent key
// succeeds on every backend.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Read fetches and decodes the value stored under key. It returns nil
// without an error when the key is absent, and a READ_FAILED error when the
// stored bytes do not decode into T.
func Read[T any](ctx context.Context, s Store, key string) (*T, error) {
	data, err := s.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, newError(ReasonReadFailed, err)
	}
	return &value, nil
}

// Write encodes value as JSON and stores it under key.
func Write[T any](ctx context.Context, s Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return newError(ReasonWriteFailed, err)
	}
	return s.Write(ctx, key, data)
}
