package cache

import (
	"errors"
	"fmt"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// CacheError is a failed store operation. Retryable is false when repeating the call with
// the same input cannot succeed, e.g. a value that does not encode.
type CacheError struct {
	Operation string
	Key       string
	Err       error
	Retryable bool
}

func NewCacheError(operation string, err error, retryable bool) *CacheError {
	return &CacheError{Operation: operation, Err: err, Retryable: retryable}
}

// WithKey records the key or pattern the operation was working on.
func (e *CacheError) WithKey(key string) *CacheError {
	e.Key = key
	return e
}

func (e *CacheError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s %q: %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("cache %s: %v", e.Operation, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
