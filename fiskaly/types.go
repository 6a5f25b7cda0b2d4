package fiskaly

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// SDKVersion identifies this client to SMAERS in create-context. Bump it
// whenever the wire contract changes.
const SDKVersion = "1.1.500"

// RPC method names.
const (
	methodCreateContext = "create-context"
	methodConfig        = "config"
	methodVersion       = "version"
	methodRequest       = "request"
)

// ConfigParams is the write side of the SMAERS configuration. Nil fields
// are not sent.
type ConfigParams struct {
	DebugLevel    *int    `json:"debug_level,omitempty"`
	DebugFile     *string `json:"debug_file,omitempty"`
	ClientTimeout *int    `json:"client_timeout,omitempty"`
	SMAERSTimeout *int    `json:"smaers_timeout,omitempty"`
}

// Config is a snapshot of the configuration reported by SMAERS. Timeouts
// are in milliseconds.
type Config struct {
	DebugLevel    int    `json:"debug_level"`
	DebugFile     string `json:"debug_file"`
	ClientTimeout int    `json:"client_timeout"`
	SMAERSTimeout int    `json:"smaers_timeout"`
}

func (c Config) String() string {
	return fmt.Sprintf("debug_level=%d debug_file=%q client_timeout=%dms smaers_timeout=%dms",
		c.DebugLevel, c.DebugFile, c.ClientTimeout, c.SMAERSTimeout)
}

// Version describes the SMAERS client library and engine.
type Version struct {
	ClientVersion    string
	ClientSourceHash string
	ClientCommitHash string
	SMAERSVersion    string
}

func (v Version) String() string {
	return fmt.Sprintf("client %s (source %s, commit %s), smaers %s",
		v.ClientVersion, v.ClientSourceHash, v.ClientCommitHash, v.SMAERSVersion)
}

// Request describes an HTTP call SMAERS performs against the fiskaly API on
// the caller's behalf. Empty optional fields are left out of the envelope.
type Request struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   map[string]any    `json:"query,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	// Body is base64-encoded JSON, see EncodeBody.
	Body string `json:"body,omitempty"`
	// DestinationFile makes SMAERS write the response body to this path.
	DestinationFile string `json:"destination_file,omitempty"`
}

// RequestResult wraps the reply of a request call.
type RequestResult struct {
	// Response is the raw "response" member of the reply.
	Response json.RawMessage
	// Context is the session token returned with the reply.
	Context string
}

// Decode unmarshals the raw response into v.
func (r RequestResult) Decode(v any) error {
	if len(r.Response) == 0 {
		return fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}
	return json.Unmarshal(r.Response, v)
}

// EncodeBody marshals v to JSON and base64-encodes it for Request.Body.
func EncodeBody(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Ptr returns a pointer to v, for filling ConfigParams.
func Ptr[T any](v T) *T {
	return &v
}

type createContextParams struct {
	BaseURL    string `json:"base_url"`
	APIKey     string `json:"api_key"`
	APISecret  string `json:"api_secret"`
	SDKVersion string `json:"sdk_version"`
}

type contextParams struct {
	Context string `json:"context"`
}

type configureParams struct {
	Config  ConfigParams `json:"config"`
	Context string       `json:"context"`
}

type requestParams struct {
	Request Request `json:"request"`
	Context string  `json:"context"`
}

type contextResult struct {
	Context string `json:"context"`
}

type configResult struct {
	Config  *Config `json:"config"`
	Context string  `json:"context"`
}

type versionResult struct {
	Client *struct {
		Version    string `json:"version"`
		SourceHash string `json:"source_hash"`
		CommitHash string `json:"commit_hash"`
	} `json:"client"`
	SMAERS *struct {
		Version string `json:"version"`
	} `json:"smaers"`
}

type requestResult struct {
	Response json.RawMessage `json:"response"`
	Context  string          `json:"context"`
}
