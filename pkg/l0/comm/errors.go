package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrSerialization indicates a value doesn't fit the output buffer.
	ErrSerialization = errors.New("serialization error")
	// ErrFrame indicates a frame can't be COBS decoded or deserialized.
	ErrFrame = errors.New("frame error")
	// ErrCrcMismatch indicates the checksum of a frame doesn't match.
	ErrCrcMismatch = errors.New("crc mismatch")
	// ErrBufferOverflow indicates the receive buffer filled up without
	// a frame boundary.
	ErrBufferOverflow = errors.New("buffer overflow")
	// ErrEmptyOrOversizedFrame indicates a reply is empty or the sentinel
	// is not found within the receive buffer.
	ErrEmptyOrOversizedFrame = errors.New("empty or oversized frame")
	// ErrParseErrorReply indicates the device failed to parse the request.
	ErrParseErrorReply = errors.New("device replied parse error")
	// ErrReadTimeout indicates no byte is received within the read timeout.
	ErrReadTimeout = errors.New("read timeout")
	// ErrRetriesExhausted indicates all attempts of a request failed.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// DecodeError is returned when a frame fails to decode.
// Kind is either ErrFrame or ErrCrcMismatch.
type DecodeError struct {
	Kind error
	Err  error
}

// Error implements error.
func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Is matches the Kind.
func (e *DecodeError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RetriesExhaustedError is returned when all attempts of a request failed.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

// Error implements error.
func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Last)
}

// Is matches ErrRetriesExhausted.
func (e *RetriesExhaustedError) Is(target error) bool {
	return target == ErrRetriesExhausted
}

// Unwrap returns the error of the last attempt.
func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}

// isAttemptError tells if err fails a single attempt and can be retried.
func isAttemptError(err error) bool {
	for _, e := range []error{
		ErrFrame,
		ErrCrcMismatch,
		ErrEmptyOrOversizedFrame,
		ErrParseErrorReply,
		ErrReadTimeout,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
