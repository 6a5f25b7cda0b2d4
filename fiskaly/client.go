package fiskaly

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// Argument names reported by usage errors.
const (
	fieldService   = "fiskaly_service"
	fieldAPIKey    = "api_key"
	fieldAPISecret = "api_secret"
	fieldBaseURL   = "base_url"
	fieldContext   = "context"
)

const (
	opNewWithCredentials = "NewWithCredentials"
	opNewWithContext     = "NewWithContext"
)

// Client is a session with one SMAERS endpoint.
type Client struct {
	transport Transport

	// call serializes round trips so each call sends its predecessor's Context.
	call sync.Mutex

	mu      sync.RWMutex
	context string
}

// NewWithCredentials validates the arguments, then opens a session with a
// single create-context call. Arguments are checked in order
// serviceURL, apiKey, apiSecret, baseURL; the first one that is blank after
// trimming is reported as a KindUsage error before anything is sent.
func NewWithCredentials(ctx context.Context, serviceURL, apiKey, apiSecret, baseURL string, opts ...Option) (*Client, error) {
	required := []struct {
		field string
		value string
	}{
		{fieldService, serviceURL},
		{fieldAPIKey, apiKey},
		{fieldAPISecret, apiSecret},
		{fieldBaseURL, baseURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, usageError(opNewWithCredentials, r.field)
		}
	}

	t, err := buildTransport(opNewWithCredentials, serviceURL, opts)
	if err != nil {
		return nil, err
	}
	c := &Client{transport: t}

	params := createContextParams{
		BaseURL:    strings.TrimSpace(baseURL),
		APIKey:     strings.TrimSpace(apiKey),
		APISecret:  strings.TrimSpace(apiSecret),
		SDKVersion: SDKVersion,
	}
	var res contextResult
	if err := c.invoke(ctx, methodCreateContext, params, &res); err != nil {
		return nil, err
	}
	if res.Context == "" {
		return nil, malformed(methodCreateContext, "missing context")
	}
	c.replaceContext(res.Context)
	return c, nil
}

// NewWithContext resumes a session from a Context obtained earlier. No call
// is made.
func NewWithContext(serviceURL, contextToken string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(serviceURL) == "" {
		return nil, usageError(opNewWithContext, fieldService)
	}
	if strings.TrimSpace(contextToken) == "" {
		return nil, usageError(opNewWithContext, fieldContext)
	}

	t, err := buildTransport(opNewWithContext, serviceURL, opts)
	if err != nil {
		return nil, err
	}
	c := &Client{transport: t}
	c.replaceContext(contextToken)
	return c, nil
}

// Context returns the current session token.
func (c *Client) Context() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.context
}

// Config reads the configuration SMAERS holds for this session.
func (c *Client) Config(ctx context.Context) (Config, error) {
	c.call.Lock()
	defer c.call.Unlock()

	var res configResult
	if err := c.invoke(ctx, methodConfig, contextParams{Context: c.Context()}, &res); err != nil {
		return Config{}, err
	}
	if res.Config == nil {
		return Config{}, malformed(methodConfig, "missing config")
	}
	c.replaceContext(res.Context)
	return *res.Config, nil
}

// Configure writes params and returns the resulting configuration.
func (c *Client) Configure(ctx context.Context, params ConfigParams) (Config, error) {
	c.call.Lock()
	defer c.call.Unlock()

	var res configResult
	if err := c.invoke(ctx, methodConfig, configureParams{Config: params, Context: c.Context()}, &res); err != nil {
		return Config{}, err
	}
	if res.Config == nil {
		return Config{}, malformed(methodConfig, "missing config")
	}
	c.replaceContext(res.Context)
	return *res.Config, nil
}

// Version reports the SMAERS client and engine versions. It is the only
// call made without a Context.
func (c *Client) Version(ctx context.Context) (Version, error) {
	var res versionResult
	if err := c.invoke(ctx, methodVersion, nil, &res); err != nil {
		return Version{}, err
	}
	if res.Client == nil || res.SMAERS == nil {
		return Version{}, malformed(methodVersion, "missing client or smaers")
	}
	return Version{
		ClientVersion:    res.Client.Version,
		ClientSourceHash: res.Client.SourceHash,
		ClientCommitHash: res.Client.CommitHash,
		SMAERSVersion:    res.SMAERS.Version,
	}, nil
}

// Request has SMAERS perform req against the fiskaly API. An empty Method
// means GET and an empty Path means "/".
func (c *Client) Request(ctx context.Context, req Request) (RequestResult, error) {
	if req.Method == "" {
		req.Method = "GET"
	}
	if req.Path == "" {
		req.Path = "/"
	}

	c.call.Lock()
	defer c.call.Unlock()

	var res requestResult
	if err := c.invoke(ctx, methodRequest, requestParams{Request: req, Context: c.Context()}, &res); err != nil {
		return RequestResult{}, err
	}
	c.replaceContext(res.Context)
	return RequestResult{Response: res.Response, Context: c.Context()}, nil
}

// invoke sends one call, classifies the outcome and decodes the result.
func (c *Client) invoke(ctx context.Context, method string, params, out any) error {
	resp, err := c.transport.Send(ctx, method, params)
	if err = classify(method, resp, err); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return malformed(method, "decode result: %v", err)
	}
	return nil
}

// replaceContext installs a Context returned by the service. An empty value
// leaves the current one in place.
func (c *Client) replaceContext(next string) {
	if next == "" {
		return
	}
	c.mu.Lock()
	c.context = next
	c.mu.Unlock()
}
