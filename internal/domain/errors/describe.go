package errors

import (
	"sweetshop/internal/errors"
)

// ErrorInfo is the user-facing description of a failure, extracted from
// the error chain for rendering.
type ErrorInfo struct {
	Code    string // Business error code, e.g. "SWEET_NOT_FOUND".
	Message string // User-friendly error message.
	Details string // Detailed error information (optional).
}

// Describe extracts the closest AppError from err's chain. Errors that
// carry no AppError collapse into ErrInternalError's description with
// the raw error text as details.
func Describe(err error) ErrorInfo {
	var appErr AppError
	if errors.As(err, &appErr) {
		return ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
			Details: appErr.Details(),
		}
	}

	return ErrorInfo{
		Code:    ErrInternalError.ErrorCode(),
		Message: ErrInternalError.Message(),
		Details: err.Error(),
	}
}
