// Package errors provides the structured error type raised by iterx.
// It carries a machine-readable ErrorCode, a human message, optional details
// and an underlying cause, and supports errors.Is matching by code.
package errors
