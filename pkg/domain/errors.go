package domain

import "fmt"

// FetchErrorKind identifies the failure mode of a feed fetch
type FetchErrorKind int

// fetch error taxonomy, kept distinct for logging even though the scheduler
// treats them uniformly
const (
	FetchTimeout FetchErrorKind = iota
	FetchConnectionRefused
	FetchDNSFailure
	FetchHTTPStatus
	FetchAutodiscovery
	FetchEmptyResponse
)

// String implements fmt.Stringer
func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchConnectionRefused:
		return "connection_refused"
	case FetchDNSFailure:
		return "dns_failure"
	case FetchHTTPStatus:
		return "http_status"
	case FetchAutodiscovery:
		return "autodiscovery"
	case FetchEmptyResponse:
		return "empty_response"
	}
	return "unknown"
}

// FetchError is a typed failure from the feed fetch client
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int // set for FetchHTTPStatus only
	Err    error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (%d)", e.URL, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

// Unwrap exposes the underlying cause
func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is a typed failure from the feed parser
type ParseError struct {
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string { return fmt.Sprintf("parse feed: %v", e.Err) }

// Unwrap exposes the underlying cause
func (e *ParseError) Unwrap() error { return e.Err }
