package fiskaly

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an *Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindTransport
	KindTimeout
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// Error codes SMAERS reports when its own call to the fiskaly backend fails.
const (
	CodeHTTPError        = -20000
	CodeHTTPTimeoutError = -21000
)

var (
	ErrUsage     = errors.New("invalid usage")
	ErrTransport = errors.New("transport failure")
	ErrTimeout   = errors.New("timeout")
	ErrService   = errors.New("service error")

	// ErrMalformedResponse is wrapped by transport errors raised for replies
	// that decode as JSON-RPC but lack the fields the operation needs.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is the single error type returned by Client.
type Error struct {
	Kind Kind
	// Op is the RPC method, or the constructor name for usage errors.
	Op string
	// Field names the offending argument of a usage error.
	Field string
	// Code, Message and Data are copied verbatim from a service error.
	Code    int
	Message string
	Data    json.RawMessage
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUsage:
		if e.Err == nil || e.Err == ErrUsage {
			return e.Field + " must be provided"
		}
		return fmt.Sprintf("%s: invalid %s: %v", e.Op, e.Field, e.Err)
	case KindService:
		return fmt.Sprintf("%s: service error %d: %s", e.Op, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels. A timeout is also a transport error,
// and a service error carrying CodeHTTPTimeoutError is also a timeout.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUsage:
		return e.Kind == KindUsage
	case ErrTransport:
		return e.Kind == KindTransport || e.Kind == KindTimeout
	case ErrTimeout:
		return e.Kind == KindTimeout || (e.Kind == KindService && e.Code == CodeHTTPTimeoutError)
	case ErrService:
		return e.Kind == KindService
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPResponse is the backend reply SMAERS attaches to a CodeHTTPError.
type HTTPResponse struct {
	Status  int                 `json:"status"`
	Headers map[string][]string `json:"header"`
	// Body is base64 as delivered by the service.
	Body string `json:"body"`
}

// RequestID returns the X-Request-Id header, if any.
func (r HTTPResponse) RequestID() string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, "X-Request-Id") && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// DecodeBody base64-decodes Body and unmarshals it into v.
func (r HTTPResponse) DecodeBody(v any) error {
	return decodeBase64JSON(r.Body, v)
}

// HTTPResponse extracts the backend reply from a CodeHTTPError service
// error. ok is false for any other error or when data carries no response.
func (e *Error) HTTPResponse() (resp HTTPResponse, ok bool) {
	if e.Kind != KindService || e.Code != CodeHTTPError || len(e.Data) == 0 {
		return HTTPResponse{}, false
	}
	var data struct {
		Response *HTTPResponse `json:"response"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil || data.Response == nil {
		return HTTPResponse{}, false
	}
	return *data.Response, true
}

func usageError(op, field string) *Error {
	return &Error{Kind: KindUsage, Op: op, Field: field, Err: ErrUsage}
}

func malformed(op string, format string, args ...any) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))}
}

func decodeBase64JSON(s string, v any) error {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode base64 body: %w", err)
	}
	return json.Unmarshal(raw, v)
}
