package config

// Environment variables read by parseEnv.
const (
	EnvServiceURL = "FISKALY_SERVICE_URL"
	EnvAPIKey     = "FISKALY_API_KEY"
	EnvAPISecret  = "FISKALY_API_SECRET"
	EnvBaseURL    = "FISKALY_BASE_URL"
	EnvContext    = "FISKALY_CONTEXT"
)

func parseEnv(cfg *Config, lookupEnv func(string) (string, bool)) {
	if lookupEnv == nil {
		return
	}
	targets := []struct {
		key string
		dst *string
	}{
		{EnvServiceURL, &cfg.ServiceURL},
		{EnvAPIKey, &cfg.APIKey},
		{EnvAPISecret, &cfg.APISecret},
		{EnvBaseURL, &cfg.BaseURL},
		{EnvContext, &cfg.Context},
	}
	for _, t := range targets {
		if v, ok := lookupEnv(t.key); ok && v != "" {
			*t.dst = v
		}
	}
}
