package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestExpired means the host reports the manifest as gone. The catalog entry must be updated or removed.
	ErrManifestExpired = errors.New("manifest expired")
	// ErrTransport wraps network failures while fetching the manifest.
	ErrTransport = errors.New("manifest transport error")
	// ErrParse means the body is not a manifest document.
	ErrParse = errors.New("manifest parse error")
	// ErrUnexpectedStatus is any other non-2xx response.
	ErrUnexpectedStatus = errors.New("manifest unexpected status")
)

// ExpiredError carries the catalog position of an expired manifest.
type ExpiredError struct {
	Index int
	URL   string
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("the manifest is expired or broken, update or remove it from the catalog (broken at position %d)", e.Index)
}

func (e *ExpiredError) Unwrap() error {
	return ErrManifestExpired
}

// TransportError wraps the underlying network error.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch manifest %s: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// StatusError reports a non-2xx answer that is not "gone".
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch manifest %s: unexpected status %s", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// ParseError wraps the JSON decoding failure.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse manifest %s: %s", e.URL, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
