package config

import (
	"time"
)

// Config holds runtime settings for the smaersctl CLI.
type Config struct {
	ServiceURL string
	APIKey     string
	APISecret  string
	BaseURL    string
	// Context, when set, resumes a session instead of creating one.
	Context   string
	Timeout   time.Duration
	RateLimit float64
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServiceURL = "http://127.0.0.1:8080/invoke"
	c.BaseURL = "https://kassensichv.io/api/v1"
	c.Timeout = 30 * time.Second
	c.RateLimit = 0
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the optional config file, the
// environment and finally the flags in args (usually os.Args[1:]).
func LoadConfig(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg, lookupEnv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
