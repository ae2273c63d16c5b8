package segment

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSegment means the segment list or init data cannot be used. Nothing was fetched or written.
	ErrMalformedSegment = errors.New("malformed segment")
	// ErrNonSuccessStatus is a segment response other than 200.
	ErrNonSuccessStatus = errors.New("segment non-success status")
	// ErrTransport wraps network failures other than the idle timeout.
	ErrTransport = errors.New("segment transport error")
	// ErrTimeout is returned only when downloader.max_timeout_retries is exhausted.
	ErrTimeout = errors.New("segment timeout retries exhausted")

	errIdle = errors.New("segment idle timeout")
)

// MalformedError locates the offending segment. Index is -1 for the init segment.
type MalformedError struct {
	Index  int
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("init segment: %s", e.Reason)
	}
	return fmt.Sprintf("segment %d: %s", e.Index, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedSegment
}

// StatusError is a non-200 segment response.
type StatusError struct {
	Index  int
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("segment %d (%s): status %s", e.Index, e.URL, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrNonSuccessStatus
}

// TransportError wraps connection, DNS, reset or body read failures.
type TransportError struct {
	Index int
	URL   string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("segment %d (%s): %s", e.Index, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}
