// Package config loads runtime configuration for the smaersctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     ".toml" are parsed as TOML, anything else as JSON.
//  3. Environment: FISKALY_SERVICE_URL, FISKALY_API_KEY, FISKALY_API_SECRET,
//     FISKALY_BASE_URL, FISKALY_CONTEXT.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string    SMAERS JSON-RPC endpoint URL
//	-k string    API key
//	-p string    API secret (prompted without echo when empty)
//	-b string    fiskaly API base URL
//	-context     resume a session from this Context instead of logging in
//	-t int       per-call timeout (seconds)
//	-r float     client-side call rate limit (calls per second, 0 = off)
//	-l string    log level: debug, info, warn, error
//
// # File schema
//
// Durations are strings such as "5s":
//
//	service_url = "http://127.0.0.1:8080/invoke"
//	api_key     = "..."
//	api_secret  = "..."
//	base_url    = "https://kassensichv.io/api/v1"
//	timeout     = "30s"
//	rate_limit  = 5.0
//	log_level   = "debug"
package config
