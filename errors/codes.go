package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Sequence errors
const (
	// ErrCodeEmptySequence indicates a reduction without a seed over a sequence with no elements.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
	// ErrCodeMisshapenElement indicates an element that does not have the shape an operation expects.
	ErrCodeMisshapenElement ErrorCode = "MISSHAPEN_ELEMENT"
)

// Argument errors
const (
	// ErrCodeInvalidArgument indicates an argument outside the accepted domain.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidInput indicates input that failed struct validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Runtime errors
const (
	// ErrCodeCallbackFailed indicates a user-supplied callback returned an error.
	ErrCodeCallbackFailed ErrorCode = "CALLBACK_FAILED"
	// ErrCodeCanceled indicates the context of a pull was canceled.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var callerFaultCodes = map[ErrorCode]bool{
	ErrCodeEmptySequence:    true,
	ErrCodeMisshapenElement: true,
	ErrCodeInvalidArgument:  true,
	ErrCodeInvalidInput:     true,
}

// IsCallerFault returns true if the code describes a violation of the caller's contract.
func IsCallerFault(code ErrorCode) bool {
	return callerFaultCodes[code]
}
