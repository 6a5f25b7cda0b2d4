package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/smaersclient/internal/flagx"
)

var settingFlags = []string{"-s", "-k", "-p", "-b", "-context", "-t", "-r", "-l"}

// ValuedFlags lists every flag that consumes a value, config file included.
var ValuedFlags = append(append([]string{}, flagx.ConfigFlags...), settingFlags...)

// parseFlags overlays cfg with the flags it recognises in args. Other
// arguments are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("smaersctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServiceURL, "s", cfg.ServiceURL, "SMAERS endpoint URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key")
	fs.StringVar(&cfg.APISecret, "p", cfg.APISecret, "API secret")
	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "fiskaly API base URL")
	fs.StringVar(&cfg.Context, "context", cfg.Context, "resume session from context")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "per-call timeout (in seconds)")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "calls per second, 0 disables")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, settingFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Only an explicit -t replaces the timeout; the default may not be whole seconds.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.Timeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
