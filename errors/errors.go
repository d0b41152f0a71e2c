package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Sentinels for errors.Is. Matching is by Code only.
var (
	ErrEmptySequence    = &AppError{Code: ErrCodeEmptySequence, Message: "empty sequence"}
	ErrMisshapenElement = &AppError{Code: ErrCodeMisshapenElement, Message: "misshapen element"}
	ErrInvalidArgument  = &AppError{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
)

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// EmptySequence creates a new AppError for a seedless reduction over an empty sequence.
func EmptySequence(op string) *AppError {
	return &AppError{
		Code: ErrCodeEmptySequence, Message: fmt.Sprintf("%s of empty sequence with no initial value", op),
		Details: map[string]any{"operation": op},
	}
}

// MisshapenElement creates a new AppError for an element of unexpected shape.
func MisshapenElement(op string, got any) *AppError {
	return &AppError{
		Code: ErrCodeMisshapenElement, Message: fmt.Sprintf("%s received an element of unexpected shape: %T", op, got),
		Details: map[string]any{"operation": op, "element": fmt.Sprintf("%v", got)},
	}
}

// InvalidArgument creates a new AppError for an argument outside the accepted domain.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for struct validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// CallbackFailed creates a new AppError for a callback that failed at index.
func CallbackFailed(op string, index int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCallbackFailed, Message: fmt.Sprintf("%s callback failed at index %d", op, index),
		Details: map[string]any{"operation": op, "index": index}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "An unexpected error occurred.", Cause: cause}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf classifies err. Context cancellation maps to CANCELED and any other
// non-AppError to CALLBACK_FAILED, since the only foreign errors that reach
// an iterator come from sources and callbacks.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return ErrCodeCanceled
	}
	return ErrCodeCallbackFailed
}
