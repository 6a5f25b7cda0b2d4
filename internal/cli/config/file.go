package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dmitrijs2005/smaersclient/internal/flagx"
)

// Duration reads "5s"-style strings from JSON and TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// FileConfig is the on-disk shape of the config file. Only fields present
// in the file override the current values.
type FileConfig struct {
	ServiceURL *string   `json:"service_url" toml:"service_url"`
	APIKey     *string   `json:"api_key" toml:"api_key"`
	APISecret  *string   `json:"api_secret" toml:"api_secret"`
	BaseURL    *string   `json:"base_url" toml:"base_url"`
	Context    *string   `json:"context" toml:"context"`
	Timeout    *Duration `json:"timeout" toml:"timeout"`
	RateLimit  *float64  `json:"rate_limit" toml:"rate_limit"`
	LogLevel   *string   `json:"log_level" toml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&cfg.ServiceURL, fc.ServiceURL)
	setString(&cfg.APIKey, fc.APIKey)
	setString(&cfg.APISecret, fc.APISecret)
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.Context, fc.Context)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.Timeout != nil {
		cfg.Timeout = time.Duration(*fc.Timeout)
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
}
