package oic

import (
	"errors"
	"fmt"
	"net"
)

// FailureKind classifies a failed network call. The set is closed: every
// failure the client can return maps onto exactly one kind.
type FailureKind int

const (
	FailureConnect FailureKind = iota
	FailureTimeout
	FailureHTTPStatus
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureConnect:
		return "connect"
	case FailureTimeout:
		return "timeout"
	case FailureHTTPStatus:
		return "http_status"
	case FailureDecode:
		return "decode"
	}
	return "unknown"
}

// CallError is a transport or decode failure from the OIC API or the token
// endpoint. HTTP-status failures keep their own type, *HTTPError.
type CallError struct {
	Kind  FailureKind
	cause error
}

func (e *CallError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.cause) }

func (e *CallError) Unwrap() error { return e.cause }

func transportError(err error) *CallError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &CallError{Kind: FailureTimeout, cause: err}
	}
	return &CallError{Kind: FailureConnect, cause: err}
}

func decodeError(err error) *CallError {
	return &CallError{Kind: FailureDecode, cause: err}
}

// FailureOf returns the classification carried by err, walking the wrap
// chain. ok is false for errors that never reached the network, such as a
// missing archive file.
func FailureOf(err error) (FailureKind, bool) {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind, true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return FailureHTTPStatus, true
	}
	return 0, false
}
