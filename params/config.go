package params

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	validator "gopkg.in/go-playground/validator.v9"
	"gopkg.in/yaml.v3"

	"github.com/rewards-dashboard/rpcfallback/logutils"
)

// ----------
// RetryConfig
// ----------

// RetryConfig controls how hard a single endpoint is tried before the
// fallback layer moves on to the next candidate.
type RetryConfig struct {
	// Timeout bounds a single health probe.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gt=0"`

	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries int `json:"maxRetries" yaml:"maxRetries" validate:"gte=0"`

	// RetryDelay is the delay before the second attempt.
	RetryDelay time.Duration `json:"retryDelay" yaml:"retryDelay" validate:"gte=0"`

	// BackoffMultiplier scales RetryDelay after every failed attempt.
	BackoffMultiplier float64 `json:"backoffMultiplier" yaml:"backoffMultiplier" validate:"gte=1"`
}

// DefaultRetryConfig returns the retry settings used when callers pass none.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Timeout:           DefaultProbeTimeout,
		MaxRetries:        DefaultMaxRetries,
		RetryDelay:        DefaultRetryDelay,
		BackoffMultiplier: DefaultBackoffMultiplier,
	}
}

// Validate validates the RetryConfig struct and returns an error if inconsistent values are found
func (c *RetryConfig) Validate(validate *validator.Validate) error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// String dumps config object as nicely indented JSON
func (c *RetryConfig) String() string {
	data, _ := json.MarshalIndent(c, "", "    ") // nolint: gas
	return string(data)
}

// ResolveRetryConfig returns the defaults for a nil config and a validated copy otherwise.
func ResolveRetryConfig(c *RetryConfig) (RetryConfig, error) {
	if c == nil {
		return DefaultRetryConfig(), nil
	}
	resolved := *c
	if err := resolved.Validate(NewValidator()); err != nil {
		return RetryConfig{}, fmt.Errorf("invalid retry config: %w", err)
	}
	return resolved, nil
}

// ----------
// EndpointsConfig
// ----------

// EndpointsConfig describes where candidate RPC endpoints come from.
type EndpointsConfig struct {
	// RPCURLs is a comma separated list of operator supplied endpoints.
	RPCURLs string `json:"rpcUrls" yaml:"rpcUrls"`

	// APIKey enables the premium keyed endpoint when set.
	APIKey string `json:"-" yaml:"apiKey"`

	// PremiumURLTemplate is formatted with APIKey to build the premium endpoint.
	PremiumURLTemplate string `json:"premiumUrlTemplate" yaml:"premiumUrlTemplate"`

	// PublicEndpoints are tried after configured ones, in order of historical reliability.
	PublicEndpoints []string `json:"publicEndpoints" yaml:"publicEndpoints"`

	// ChainID is the chain every endpoint must serve.
	ChainID uint64 `json:"chainId" yaml:"chainId" validate:"gt=0"`

	// CacheDir is where the last known good endpoint is persisted.
	CacheDir string `json:"cacheDir" yaml:"cacheDir"`
}

// NewEndpointsConfig returns the mainnet defaults.
func NewEndpointsConfig() EndpointsConfig {
	public := make([]string, len(DefaultPublicEndpoints))
	copy(public, DefaultPublicEndpoints)
	return EndpointsConfig{
		PremiumURLTemplate: DefaultPremiumURLTemplate,
		PublicEndpoints:    public,
		ChainID:            MainnetChainID,
		CacheDir:           ".",
	}
}

// ConfiguredURLs splits RPCURLs, dropping blanks.
func (c *EndpointsConfig) ConfiguredURLs() []string {
	var urls []string
	for _, raw := range strings.Split(c.RPCURLs, ",") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

// PremiumURL returns the keyed endpoint, or "" when no key is configured.
func (c *EndpointsConfig) PremiumURL() string {
	if c.APIKey == "" || c.PremiumURLTemplate == "" {
		return ""
	}
	return fmt.Sprintf(c.PremiumURLTemplate, c.APIKey)
}

// Redact masks the API key so an endpoint can be logged.
func (c *EndpointsConfig) Redact(endpoint string) string {
	if c.APIKey == "" {
		return endpoint
	}
	return strings.ReplaceAll(endpoint, c.APIKey, "***")
}

// Validate validates the EndpointsConfig struct and returns an error if inconsistent values are found
func (c *EndpointsConfig) Validate(validate *validator.Validate) error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	for _, u := range c.ConfiguredURLs() {
		if _, err := url.ParseRequestURI(u); err != nil {
			return fmt.Errorf("EndpointsConfig.RPCURLs entry '%s' is invalid: %v", u, err.Error())
		}
	}

	if c.APIKey != "" && !strings.Contains(c.PremiumURLTemplate, "%s") {
		return fmt.Errorf("EndpointsConfig.PremiumURLTemplate '%s' has no key placeholder", c.PremiumURLTemplate)
	}

	return nil
}

// ----------
// Config
// ----------

// Config is the top level configuration of the fallback client.
type Config struct {
	Endpoints EndpointsConfig      `json:"endpoints" yaml:"endpoints"`
	Retry     RetryConfig          `json:"retry" yaml:"retry"`
	Log       logutils.LogSettings `json:"log" yaml:"log"`
}

// NewConfig creates a configuration with every default applied.
// Important: the returned config is not validated.
func NewConfig() *Config {
	return &Config{
		Endpoints: NewEndpointsConfig(),
		Retry:     DefaultRetryConfig(),
		Log: logutils.LogSettings{
			Enabled: true,
			Level:   "INFO",
		},
	}
}

// LoadConfigFile reads a YAML file on top of the defaults and validates the result.
func LoadConfigFile(path string) (*Config, error) {
	config := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if Config fields have valid values.
func (c *Config) Validate() error {
	validate := NewValidator()

	if err := c.Endpoints.Validate(validate); err != nil {
		return err
	}
	if err := c.Retry.Validate(validate); err != nil {
		return err
	}

	return nil
}

// String dumps config object as nicely indented JSON
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "    ") // nolint: gas
	return string(data)
}

// NewValidator returns a validator for config structs.
func NewValidator() *validator.Validate {
	return validator.New()
}
