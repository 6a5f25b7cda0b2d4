package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/smaersclient/fiskaly"
	"github.com/dmitrijs2005/smaersclient/internal/cli/config"
	"github.com/dmitrijs2005/smaersclient/internal/logging"
	"github.com/dmitrijs2005/smaersclient/jsonrpc"
)

type fakeTransport struct {
	methods []string
	params  []any
	result  string
}

func (f *fakeTransport) Send(ctx context.Context, method string, params any) (*jsonrpc.Response, error) {
	f.methods = append(f.methods, method)
	f.params = append(f.params, params)
	return &jsonrpc.Response{Result: json.RawMessage(f.result)}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ServiceURL: "http://127.0.0.1:8080/invoke",
		BaseURL:    "https://kassensichv.io/api/v1",
		Timeout:    time.Second,
		RateLimit:  10,
	}
}

func stubPassword(t *testing.T, pw string, err error) *int {
	t.Helper()
	calls := 0
	old := readPassword
	readPassword = func(int) ([]byte, error) {
		calls++
		if err != nil {
			return nil, err
		}
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = old })
	return &calls
}

func TestNewApp_ResumesFromContext(t *testing.T) {
	calls := stubPassword(t, "unused", nil)
	ft := &fakeTransport{}
	cfg := testConfig()
	cfg.Context = "CTX-1"
	cfg.APIKey = "key"

	app, err := NewApp(context.Background(), cfg, logging.Discard(), fiskaly.WithTransport(ft))
	require.NoError(t, err)

	assert.Equal(t, "CTX-1", app.session.Context())
	assert.Empty(t, ft.methods, "resuming makes no call")
	assert.Zero(t, *calls, "no secret prompt when resuming")
}

func TestNewApp_PromptsForMissingSecret(t *testing.T) {
	calls := stubPassword(t, " s3cret ", nil)
	ft := &fakeTransport{result: `{"context":"NEW"}`}
	cfg := testConfig()
	cfg.APIKey = "key"

	app, err := NewApp(context.Background(), cfg, logging.Discard(), fiskaly.WithTransport(ft))
	require.NoError(t, err)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, []string{"create-context"}, ft.methods)
	assert.Equal(t, "NEW", app.session.Context())

	raw, err := json.Marshal(ft.params[0])
	require.NoError(t, err)
	var sent map[string]string
	require.NoError(t, json.Unmarshal(raw, &sent))
	assert.Equal(t, "s3cret", sent["api_secret"])
	assert.Equal(t, "key", sent["api_key"])
}

func TestNewApp_ConfiguredSecretSkipsPrompt(t *testing.T) {
	calls := stubPassword(t, "unused", nil)
	ft := &fakeTransport{result: `{"context":"NEW"}`}
	cfg := testConfig()
	cfg.APIKey = "key"
	cfg.APISecret = "secret"

	_, err := NewApp(context.Background(), cfg, logging.Discard(), fiskaly.WithTransport(ft))
	require.NoError(t, err)
	assert.Zero(t, *calls)
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("prompt fails", func(t *testing.T) {
		stubPassword(t, "", errors.New("no tty"))
		ft := &fakeTransport{}
		cfg := testConfig()
		cfg.APIKey = "key"

		_, err := NewApp(context.Background(), cfg, logging.Discard(), fiskaly.WithTransport(ft))
		require.Error(t, err)
		assert.Empty(t, ft.methods)
	})

	t.Run("missing api key", func(t *testing.T) {
		calls := stubPassword(t, "", nil)
		ft := &fakeTransport{}

		_, err := NewApp(context.Background(), testConfig(), logging.Discard(), fiskaly.WithTransport(ft))
		require.ErrorIs(t, err, fiskaly.ErrUsage)
		assert.Equal(t, fiskaly.KindUsage, fiskaly.KindOf(err))
		assert.Zero(t, *calls)
		assert.Empty(t, ft.methods)
	})
}
