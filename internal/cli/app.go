package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/smaersclient/fiskaly"
	"github.com/dmitrijs2005/smaersclient/internal/cli/config"
	"github.com/dmitrijs2005/smaersclient/internal/logging"
)

// session is the part of *fiskaly.Client the CLI uses.
type session interface {
	Context() string
	Config(ctx context.Context) (fiskaly.Config, error)
	Configure(ctx context.Context, params fiskaly.ConfigParams) (fiskaly.Config, error)
	Version(ctx context.Context) (fiskaly.Version, error)
	Request(ctx context.Context, req fiskaly.Request) (fiskaly.RequestResult, error)
}

type App struct {
	config  *config.Config
	session session
	log     logging.Logger
	in      io.Reader
	out     io.Writer
}

// NewApp opens the session described by c. extra is applied after the
// options derived from c.
func NewApp(ctx context.Context, c *config.Config, log *logging.SlogLogger, extra ...fiskaly.Option) (*App, error) {
	a := &App{config: c, log: log, in: os.Stdin, out: os.Stdout}

	opts := []fiskaly.Option{
		fiskaly.WithTimeout(c.Timeout),
		fiskaly.WithLogger(log.Slog()),
	}
	if c.RateLimit > 0 {
		opts = append(opts, fiskaly.WithRateLimit(rate.Limit(c.RateLimit), 1))
	}
	opts = append(opts, extra...)

	s, err := a.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	a.session = s
	return a, nil
}

func (a *App) open(ctx context.Context, opts []fiskaly.Option) (*fiskaly.Client, error) {
	if a.config.Context != "" {
		a.log.Info(ctx, "resuming session", "service", a.config.ServiceURL)
		return fiskaly.NewWithContext(a.config.ServiceURL, a.config.Context, opts...)
	}

	secret := a.config.APISecret
	if secret == "" && a.config.APIKey != "" {
		pw, err := GetPassword(a.out)
		if err != nil {
			return nil, err
		}
		secret = string(pw)
		WipeByteArray(pw)
	}

	a.log.Info(ctx, "creating session", "service", a.config.ServiceURL, "base_url", a.config.BaseURL)
	c, err := fiskaly.NewWithCredentials(ctx, a.config.ServiceURL, a.config.APIKey, secret, a.config.BaseURL, opts...)
	if err != nil {
		var fe *fiskaly.Error
		if errors.As(err, &fe) && fe.Kind == fiskaly.KindUsage {
			a.log.Warn(ctx, "missing setting", "field", fe.Field)
		}
		return nil, err
	}
	return c, nil
}

// Run starts the REPL on the app's input and blocks until exit or EOF.
func (a *App) Run(ctx context.Context) {
	a.log.Info(ctx, "session ready, type 'help' for commands")
	runREPL(ctx, a, bufio.NewScanner(a.in))
}

// Exec runs a single command given as arguments.
func (a *App) Exec(ctx context.Context, args []string) error {
	return dispatch(ctx, a, args)
}
