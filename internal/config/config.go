package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sdsheeks/gqlscout/internal/errors"
)

// Default settings.
const (
	DefaultCacheTTLHours       = 24
	DefaultFetchTimeoutSeconds = 30
	DefaultFetchRatePerMinute  = 6
	DefaultAuthHeader          = "Authorization"
)

// Environment variable overrides. These win over the config file so that
// MCP client configs can inject credentials without editing files.
const (
	EnvEndpoint  = "GQLSCOUT_ENDPOINT"
	EnvAuthToken = "GQLSCOUT_AUTH_TOKEN"
)

// Config holds application configuration.
type Config struct {
	// Endpoint is the GraphQL endpoint URL the schema is fetched from. Required.
	Endpoint string `json:"endpoint"`

	// AuthHeader is the header name the auth token is sent under.
	// Defaults to "Authorization".
	AuthHeader string `json:"auth_header,omitempty"`

	// AuthToken is the credential sent with every schema fetch. Optional.
	AuthToken string `json:"auth_token,omitempty"`

	// CacheTTLHours is the freshness window for the stored schema copy.
	// A copy older than this is considered stale.
	CacheTTLHours int `json:"cache_ttl_hours,omitempty"`

	// FetchTimeoutSeconds bounds a single schema fetch, including the
	// introspection round-trip.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"`

	// FetchRatePerMinute caps how often the remote endpoint is hit.
	FetchRatePerMinute int `json:"fetch_rate_per_minute,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AuthHeader:          DefaultAuthHeader,
		CacheTTLHours:       DefaultCacheTTLHours,
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
		FetchRatePerMinute:  DefaultFetchRatePerMinute,
	}
}

// Load loads configuration from baseDir/config.json, applies defaults, and
// then applies environment overrides. Returns default config if the file
// doesn't exist. The baseDir parameter allows tests to use t.TempDir()
// instead of ~/.gqlscout.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	applyEnv(merged)
	return merged, nil
}

// CachePath returns the location of the cached SDL document under baseDir.
func CachePath(baseDir string) string {
	return filepath.Join(baseDir, "schema.graphql")
}

// Validate checks that required settings are present and sane.
// A failure here is fatal to process start.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.NewConfiguration("endpoint is required (set it in config.json or "+EnvEndpoint+")", nil)
	}
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return errors.NewConfiguration("endpoint must be an http(s) URL: "+c.Endpoint, nil)
	}
	if c.CacheTTLHours <= 0 {
		return errors.NewConfiguration("cache_ttl_hours must be positive, got "+strconv.Itoa(c.CacheTTLHours), nil)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return errors.NewConfiguration("fetch_timeout_seconds must be positive, got "+strconv.Itoa(c.FetchTimeoutSeconds), nil)
	}
	return nil
}

// applyEnv overrides settings from the process environment.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAuthToken)); v != "" {
		cfg.AuthToken = v
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Endpoint = overlay.Endpoint
	if result.Endpoint == "" {
		result.Endpoint = base.Endpoint
	}

	result.AuthHeader = overlay.AuthHeader
	if result.AuthHeader == "" {
		result.AuthHeader = base.AuthHeader
	}

	result.AuthToken = overlay.AuthToken
	if result.AuthToken == "" {
		result.AuthToken = base.AuthToken
	}

	result.CacheTTLHours = overlay.CacheTTLHours
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = base.CacheTTLHours
	}

	result.FetchTimeoutSeconds = overlay.FetchTimeoutSeconds
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = base.FetchTimeoutSeconds
	}

	result.FetchRatePerMinute = overlay.FetchRatePerMinute
	if result.FetchRatePerMinute == 0 {
		result.FetchRatePerMinute = base.FetchRatePerMinute
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
