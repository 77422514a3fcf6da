package pngme

import (
	"errors"
	"fmt"
)

// Error types for PNG chunk operations
var (
	// ErrInvalidChunkType is returned when a chunk type contains a byte that is not an ASCII letter
	ErrInvalidChunkType = &PngError{Code: "INVALID_CHUNK_TYPE", Message: "invalid chunk type"}

	// ErrInvalidLength is returned when a chunk type string is not exactly 4 bytes long
	ErrInvalidLength = &PngError{Code: "INVALID_LENGTH", Message: "chunk type must be 4 bytes"}

	// ErrInvalidUTF8 is returned when a chunk payload is read as text but is not valid UTF-8
	ErrInvalidUTF8 = &PngError{Code: "INVALID_UTF8", Message: "chunk data is not valid utf-8"}

	// ErrCrcMismatch is returned when the trailing CRC of a chunk does not match its contents
	ErrCrcMismatch = &PngError{Code: "CRC_MISMATCH", Message: "chunk crc mismatch"}

	// ErrTruncatedInput is returned when a buffer ends before a chunk is complete
	ErrTruncatedInput = &PngError{Code: "TRUNCATED_INPUT", Message: "truncated input"}

	// ErrInvalidSignature is returned when a buffer does not start with the PNG signature
	ErrInvalidSignature = &PngError{Code: "INVALID_SIGNATURE", Message: "invalid png signature"}

	// ErrChunkNotFound is returned when no chunk of the requested type exists
	ErrChunkNotFound = &PngError{Code: "CHUNK_NOT_FOUND", Message: "chunk not found"}

	// ErrCompression is returned when a message cannot be deflated or inflated
	ErrCompression = &PngError{Code: "COMPRESSION_FAILED", Message: "message compression failed"}
)

// PngError represents a structured error in PNG chunk operations
type PngError struct {
	Code    string                 // Error code for programmatic handling
	Message string                 // Human-readable error message
	Cause   error                  // Underlying error, if any
	Details map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *PngError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s (details: %v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PngError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a PngError with the same code, so sentinels
// still match after WithDetail or WithCause derived a new value.
func (e *PngError) Is(target error) bool {
	t, ok := target.(*PngError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause adds a cause to the error
func (e *PngError) WithCause(cause error) *PngError {
	return &PngError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
		Details: e.Details,
	}
}

// WithDetail adds a detail key-value pair to the error
func (e *PngError) WithDetail(key string, value interface{}) *PngError {
	details := make(map[string]interface{})
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &PngError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Details: details,
	}
}

// WithMessage overrides the error message
func (e *PngError) WithMessage(message string) *PngError {
	return &PngError{
		Code:    e.Code,
		Message: message,
		Cause:   e.Cause,
		Details: e.Details,
	}
}

// NewInvalidChunkTypeError reports the offending byte and its position.
func NewInvalidChunkTypeError(b [4]byte, pos int) error {
	return ErrInvalidChunkType.
		WithDetail("chunkType", fmt.Sprintf("%q", b[:])).
		WithDetail("position", pos)
}

// NewInvalidLengthError creates an invalid length error for a chunk type string
func NewInvalidLengthError(s string) error {
	return ErrInvalidLength.
		WithDetail("chunkType", s).
		WithDetail("length", len(s))
}

// NewCrcMismatchError carries both the stored and the recomputed checksum.
func NewCrcMismatchError(chunkType string, expected, actual uint32) error {
	return ErrCrcMismatch.
		WithDetail("chunkType", chunkType).
		WithDetail("expected", expected).
		WithDetail("actual", actual)
}

// NewTruncatedInputError creates a truncated input error for the named field
func NewTruncatedInputError(field string, need, have int64) error {
	return ErrTruncatedInput.
		WithDetail("field", field).
		WithDetail("need", need).
		WithDetail("have", have)
}

// NewChunkNotFoundError creates a chunk not found error
func NewChunkNotFoundError(chunkType string) error {
	return ErrChunkNotFound.WithDetail("chunkType", chunkType)
}

// NewCompressionError creates a compression error
func NewCompressionError(op string, cause error) error {
	return ErrCompression.
		WithDetail("op", op).
		WithCause(cause)
}

// IsPngError checks if an error is a PngError
func IsPngError(err error) bool {
	var pngErr *PngError
	return errors.As(err, &pngErr)
}

// GetErrorCode extracts the error code from a PngError
func GetErrorCode(err error) string {
	var pngErr *PngError
	if errors.As(err, &pngErr) {
		return pngErr.Code
	}
	return ""
}
