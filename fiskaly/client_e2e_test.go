package fiskaly

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcCall struct {
	Method string                     `json:"method"`
	ID     string                     `json:"id"`
	Params map[string]json.RawMessage `json:"params"`
}

// smaersStub is a minimal in-process SMAERS: it issues ctx-N tokens and
// rejects calls that do not present the latest one.
type smaersStub struct {
	mu     sync.Mutex
	issued int
	latest string
	calls  []rpcCall
	config map[string]any
	hold   time.Duration
}

func (s *smaersStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var call rpcCall
		if err := json.Unmarshal(raw, &call); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if s.hold > 0 {
			select {
			case <-time.After(s.hold):
			case <-r.Context().Done():
				return
			}
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls = append(s.calls, call)

		reply := func(result any) {
			_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": call.ID, "result": result})
		}
		fail := func(code int, msg string) {
			_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": call.ID, "error": map[string]any{"code": code, "message": msg}})
		}
		next := func() string {
			s.issued++
			s.latest = "ctx-" + strconv.Itoa(s.issued)
			return s.latest
		}

		if call.Method == "version" {
			reply(map[string]any{
				"client": map[string]any{"version": "1.2.200", "source_hash": "s", "commit_hash": "c"},
				"smaers": map[string]any{"version": "2.1.0"},
			})
			return
		}
		if call.Method == "create-context" {
			reply(map[string]any{"context": next()})
			return
		}

		var token string
		_ = json.Unmarshal(call.Params["context"], &token)
		if token != s.latest {
			fail(-32001, "stale context "+token)
			return
		}

		switch call.Method {
		case "config":
			if cfg, ok := call.Params["config"]; ok {
				_ = json.Unmarshal(cfg, &s.config)
			}
			reply(map[string]any{"context": next(), "config": s.config})
		case "request":
			reply(map[string]any{"context": next(), "response": map[string]any{"status": 200, "body": "e30="}})
		default:
			fail(-32601, "method not found")
		}
	})
}

func TestEndToEnd_OverHTTP(t *testing.T) {
	stub := &smaersStub{config: map[string]any{"debug_level": 0, "debug_file": "", "client_timeout": 1500, "smaers_timeout": 1500}}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	ctx := context.Background()
	c, err := NewWithCredentials(ctx, srv.URL, "key", "secret", "https://kassensichv.io/api/v1")
	require.NoError(t, err)
	assert.Equal(t, "ctx-1", c.Context())

	v, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", v.SMAERSVersion)

	cfg, err := c.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.ClientTimeout)
	assert.Equal(t, "ctx-2", c.Context())

	cfg, err = c.Configure(ctx, ConfigParams{DebugLevel: Ptr(4), DebugFile: Ptr("fiskaly.log"), ClientTimeout: Ptr(5000), SMAERSTimeout: Ptr(2000)})
	require.NoError(t, err)
	assert.Equal(t, Config{DebugLevel: 4, DebugFile: "fiskaly.log", ClientTimeout: 5000, SMAERSTimeout: 2000}, cfg)
	assert.Equal(t, "ctx-3", c.Context())

	res, err := c.Request(ctx, Request{Method: "PUT", Path: "/tss/1", Query: map[string]any{"last_revision": "0"}})
	require.NoError(t, err)
	assert.Equal(t, "ctx-4", res.Context)

	// A second client resumed from the same token continues the session.
	resumedClient, err := NewWithContext(srv.URL, c.Context())
	require.NoError(t, err)
	_, err = resumedClient.Config(ctx)
	require.NoError(t, err)

	// The first client now holds a stale token; the service says so verbatim.
	_, err = c.Config(ctx)
	require.ErrorIs(t, err, ErrService)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, -32001, e.Code)
	assert.Equal(t, "stale context ctx-4", e.Message)
	assert.Equal(t, "ctx-4", c.Context())

	stub.mu.Lock()
	defer stub.mu.Unlock()
	methods := make([]string, 0, len(stub.calls))
	for _, call := range stub.calls {
		methods = append(methods, call.Method)
	}
	assert.Equal(t, []string{"create-context", "version", "config", "config", "request", "config", "config"}, methods)
	_, hasParams := stub.calls[1].Params["context"]
	assert.False(t, hasParams, "version must not carry a context")
}

func TestEndToEnd_TimeoutKeepsContext(t *testing.T) {
	stub := &smaersStub{hold: time.Second}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c, err := NewWithContext(srv.URL, "ctx-0", WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Request(context.Background(), Request{Method: "GET", Path: "/tss"})
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.Equal(t, "ctx-0", c.Context())
}

func TestEndToEnd_HTTPStatusIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewWithCredentials(context.Background(), srv.URL, "k", "s", "b")
	require.ErrorIs(t, err, ErrTransport)
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.Equal(t, KindTransport, KindOf(err))
}
