package errors

import (
	"errors"
	"fmt"
)

type fields map[string]interface{}

func newAppError(errorType ErrorType, code, message string, cause error, context fields) *AppError {
	if context == nil {
		context = fields{}
	}
	return &AppError{Type: errorType, Message: message, Code: code, Cause: cause, Context: context}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause, nil)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		fields{"resource": resource, "identifier": identifier})
}

// NewStorageError creates an error for a failed read or write against the local store
func NewStorageError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, "STORAGE_ERROR",
		"storage operation failed: "+operation, cause,
		fields{"operation": operation})
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, "INVALID_INPUT",
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		fields{"field": field, "value": value, "reason": reason})
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, "TIMEOUT",
		"operation timed out: "+operation, nil,
		fields{"operation": operation, "timeout": timeout})
}

// NewUnauthenticatedError is returned when an operation needs an active session
func NewUnauthenticatedError(operation string) *AppError {
	return newAppError(ErrorTypeUnauthenticated, "UNAUTHENTICATED",
		"sign in required to "+operation, nil,
		fields{"operation": operation})
}

// NewMalformedSnapshotError reports a stored value that does not decode to the expected shape
func NewMalformedSnapshotError(key string, cause error) *AppError {
	return newAppError(ErrorTypeMalformedSnapshot, "MALFORMED_SNAPSHOT",
		fmt.Sprintf("stored value for %q is malformed", key), cause,
		fields{"key": key})
}

// NewNotReadyError is returned by task operations invoked before the store was initialized
func NewNotReadyError(operation string) *AppError {
	return newAppError(ErrorTypeNotReady, "NOT_READY",
		"task store is not initialized: "+operation, nil,
		fields{"operation": operation})
}

// WrapError classifies an arbitrary error, keeping it as the cause.
// The code is the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newAppError(errorType, errorType.String(), message, err, nil)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns the message shown to the person at the terminal.
// Storage details stay in the debug log.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}

	switch appErr.Type {
	case ErrorTypeValidation:
		if appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	case ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeUnauthenticated:
		return appErr.Message
	case ErrorTypeStorage, ErrorTypeMalformedSnapshot:
		return "Local storage could not be read or written. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	case ErrorTypeNotReady:
		return "Tasks are still loading. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a system error rather than a user mistake
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeUnauthenticated:
		return false
	default:
		return true
	}
}
