package jsonrpc

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/smaersclient/internal/logging"
)

// DefaultTimeout bounds a single HTTP round trip when no other timeout is set.
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is left
// untouched unless WithTimeout is also given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit paces outgoing calls with a token bucket. Calls wait for a
// token; they are never rejected.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		if r > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(r, burst)
		}
	}
}

// WithLogger routes debug call logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = logging.NewSlogLogger(l)
	}
}

// WithIDGenerator overrides request id generation.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}
