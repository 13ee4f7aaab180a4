package errors

import (
	"context"
	stderrors "errors"
	"net/http"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	var validationErr *ValidationError
	var repoErr *RepositoryError
	switch {
	case stderrors.As(err, &validationErr):
		userMessage := MsgInvalidParameters
		if validationErr.Field == "checkout" {
			userMessage = MsgInvalidDates
		}
		return NewAppError(technicalMessage, userMessage, ErrCodeInvalidParameters, http.StatusBadRequest, err)
	case stderrors.As(err, &repoErr), stderrors.Is(err, context.DeadlineExceeded):
		return NewAppError(technicalMessage, MsgServiceUnavailable, ErrCodeServiceUnavailable, http.StatusServiceUnavailable, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}
