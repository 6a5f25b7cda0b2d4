package fiskaly

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/smaersclient/jsonrpc"
)

// Transport sends one JSON-RPC call. *jsonrpc.Client implements it.
// Timeouts are recognised as a *jsonrpc.Fault with Timeout set or an error
// wrapping context.DeadlineExceeded.
type Transport interface {
	Send(ctx context.Context, method string, params any) (*jsonrpc.Response, error)
}

// Option configures a Client at construction.
type Option func(*options)

type options struct {
	transport Transport
	rpcOpts   []jsonrpc.Option
}

// WithTransport makes the client use t instead of dialing the service URL.
// The URL is still validated.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.rpcOpts = append(o.rpcOpts, jsonrpc.WithHTTPClient(hc))
	}
}

// WithTimeout bounds each call of the default transport. Expiry surfaces
// as a KindTimeout error.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.rpcOpts = append(o.rpcOpts, jsonrpc.WithTimeout(d))
	}
}

// WithRateLimit paces calls of the default transport.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(o *options) {
		o.rpcOpts = append(o.rpcOpts, jsonrpc.WithRateLimit(r, burst))
	}
}

// WithLogger enables debug call logging on the default transport.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.rpcOpts = append(o.rpcOpts, jsonrpc.WithLogger(l))
	}
}

func buildTransport(op, serviceURL string, opts []Option) (Transport, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	rpc, err := jsonrpc.NewClient(serviceURL, o.rpcOpts...)
	if err != nil {
		return nil, &Error{Kind: KindUsage, Op: op, Field: fieldService, Err: err}
	}
	if o.transport != nil {
		return o.transport, nil
	}
	return rpc, nil
}
