package asidecache

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that the Loader had no value for the key.
	// Loaders return it (or wrap it); GetOrLoad returns it for negative hits too.
	ErrNotFound = errors.New("asidecache: not found")

	// ErrStoreUnavailable matches any *StoreError. It never reaches GetOrLoad callers.
	ErrStoreUnavailable = errors.New("asidecache: store unavailable")

	ErrInvalidKey = errors.New("asidecache: invalid key")
)

// StoreError is a failed or timed-out provider call.
type StoreError struct {
	Op  string // "get" or "set"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// LoaderError is a Loader failure, delivered to every caller waiting on the load.
type LoaderError struct {
	Key string
	Err error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Key, e.Err)
}

func (e *LoaderError) Unwrap() error { return e.Err }

type KeyError struct {
	Key    string
	Reason string
}

func (e *KeyError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid key: %s", e.Reason)
	}
	return fmt.Sprintf("invalid key %q: %s", e.Key, e.Reason)
}

func (e *KeyError) Is(target error) bool { return target == ErrInvalidKey }
