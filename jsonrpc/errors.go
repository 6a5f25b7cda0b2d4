package jsonrpc

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrInvalidEndpoint is returned by NewClient for URLs that are not absolute http(s).
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrInvalidEnvelope marks a response body that is not a JSON-RPC envelope.
	ErrInvalidEnvelope = errors.New("invalid json-rpc envelope")
	// ErrIDMismatch marks a response answering a different request id.
	ErrIDMismatch = errors.New("json-rpc response id mismatch")
	// ErrHTTPStatus marks a non-2xx HTTP status.
	ErrHTTPStatus = errors.New("unexpected http status")
)

// Fault is a transport-level failure: no JSON-RPC envelope could be obtained
// for the call.
type Fault struct {
	Method     string
	StatusCode int
	Timeout    bool
	Err        error
}

func (f *Fault) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("jsonrpc %s: http status %d: %v", f.Method, f.StatusCode, f.Err)
	}
	if f.Timeout {
		return fmt.Sprintf("jsonrpc %s: timeout: %v", f.Method, f.Err)
	}
	return fmt.Sprintf("jsonrpc %s: %v", f.Method, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// IsTimeout reports whether err is a Fault caused by a deadline.
func IsTimeout(err error) bool {
	var f *Fault
	return errors.As(err, &f) && f.Timeout
}

func isTimeoutCause(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
