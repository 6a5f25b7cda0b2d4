package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/smaersclient/internal/logging"
)

const maxResponseBytes = 64 << 20

// Client sends JSON-RPC calls to one HTTP endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	limiter  *rate.Limiter
	log      logging.Logger
	newID    func() string
}

// NewClient binds a Client to endpoint, which must be an absolute http or
// https URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	c := &Client{
		endpoint: u.String(),
		http:     &http.Client{},
		timeout:  DefaultTimeout,
		log:      logging.Discard(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send performs one call. params is omitted from the request when nil.
//
// The returned Response may carry an Error object; that is a protocol-level
// outcome and is not reported through the error return.
func (c *Client) Send(ctx context.Context, method string, params any) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// The configured timeout bounds the wait too. Wait fails early when
			// the token would arrive after the deadline.
			_, hasDeadline := ctx.Deadline()
			return nil, &Fault{Method: method, Timeout: hasDeadline && ctx.Err() != context.Canceled, Err: err}
		}
	}

	id := c.newID()
	body, err := json.Marshal(request{JSONRPC: Version, ID: id, Method: method, Params: params})
	if err != nil {
		return nil, &Fault{Method: method, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Fault{Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log := c.log.With("method", method, "id", id)
	start := time.Now()
	log.Debug(ctx, "rpc call")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fault(method, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.fault(method, 0, err)
	}
	log.Debug(ctx, "rpc reply", "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Fault{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)}
	}

	return decodeResponse(method, id, raw)
}

func decodeResponse(method, id string, raw []byte) (*Response, error) {
	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Fault{Method: method, Err: fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)}
	}
	if out.Error == nil && len(out.Result) == 0 {
		return nil, &Fault{Method: method, Err: fmt.Errorf("%w: neither result nor error present", ErrInvalidEnvelope)}
	}
	if len(out.ID) > 0 && string(out.ID) != "null" {
		var got string
		if err := json.Unmarshal(out.ID, &got); err != nil || got != id {
			return nil, &Fault{Method: method, Err: fmt.Errorf("%w: sent %q, got %s", ErrIDMismatch, id, out.ID)}
		}
	}
	return &out, nil
}

func (c *Client) fault(method string, status int, err error) *Fault {
	return &Fault{Method: method, StatusCode: status, Timeout: isTimeoutCause(err), Err: err}
}
