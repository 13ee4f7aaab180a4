package utils

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"listing-search/internal/errors"
	"listing-search/pkg/cache"
)

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}

// IsRetryableError determines if an error is transient and worth retrying.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return false
	}
	var cacheErr *cache.CacheError
	if stderrors.As(err, &cacheErr) {
		return cacheErr.Retryable
	}
	var repoErr *errors.RepositoryError
	if stderrors.As(err, &repoErr) {
		return true
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus == http.StatusServiceUnavailable
	}
	return stderrors.Is(err, context.DeadlineExceeded)
}
