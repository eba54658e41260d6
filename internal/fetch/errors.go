package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrNotModified reports an HTTP 304 on a conditional request. It is a
	// success variant, not a failure: the caller's cached state is still
	// valid and the work should be skipped.
	ErrNotModified = errors.New("not modified")
	// ErrNoResponse reports a transport-level failure (no HTTP response at
	// all: DNS, connect, timeout, cancellation).
	ErrNoResponse = errors.New("no response")
)

// StatusError reports a non-2xx HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.Code)
}

// DecodeError reports a payload that could not be decoded into the expected
// shape (malformed JSON/XML, unexpected content encoding).
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
