package params

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveRetryConfig(t *testing.T) {
	resolved, err := ResolveRetryConfig(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultRetryConfig(), resolved)

	custom := RetryConfig{Timeout: time.Second, MaxRetries: 0, RetryDelay: 0, BackoffMultiplier: 1}
	resolved, err = ResolveRetryConfig(&custom)
	require.NoError(t, err)
	require.Equal(t, custom, resolved)
}

func TestRetryConfigValidation(t *testing.T) {
	testCases := []struct {
		name   string
		config RetryConfig
		valid  bool
	}{
		{"defaults", DefaultRetryConfig(), true},
		{"zero timeout", RetryConfig{Timeout: 0, BackoffMultiplier: 1}, false},
		{"negative retries", RetryConfig{Timeout: time.Second, MaxRetries: -1, BackoffMultiplier: 1}, false},
		{"negative delay", RetryConfig{Timeout: time.Second, RetryDelay: -time.Second, BackoffMultiplier: 1}, false},
		{"shrinking backoff", RetryConfig{Timeout: time.Second, BackoffMultiplier: 0.5}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := tc.config
			_, err := ResolveRetryConfig(&config)
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestEndpointsConfigValidation(t *testing.T) {
	testCases := []struct {
		name   string
		update func(*EndpointsConfig)
		err    string
	}{
		{"defaults", func(*EndpointsConfig) {}, ""},
		{"configured urls", func(c *EndpointsConfig) { c.RPCURLs = "https://a.example, ws://b.example:8546" }, ""},
		{"bad url", func(c *EndpointsConfig) { c.RPCURLs = "https://a.example,not a url" }, "RPCURLs entry 'not a url' is invalid"},
		{"zero chain id", func(c *EndpointsConfig) { c.ChainID = 0 }, "ChainID"},
		{"key without placeholder", func(c *EndpointsConfig) {
			c.APIKey = "key"
			c.PremiumURLTemplate = "https://premium.example/"
		}, "has no key placeholder"},
		{"template without key", func(c *EndpointsConfig) { c.PremiumURLTemplate = "https://premium.example/" }, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := NewEndpointsConfig()
			tc.update(&config)
			err := config.Validate(NewValidator())
			if tc.err == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.err)
			}
		})
	}
}

func TestEndpointsConfigURLs(t *testing.T) {
	config := NewEndpointsConfig()
	config.RPCURLs = " https://a.example,, https://b.example "
	require.Equal(t, []string{"https://a.example", "https://b.example"}, config.ConfiguredURLs())
	require.Empty(t, config.PremiumURL())

	config.APIKey = "s3cr3t"
	require.Equal(t, "https://mainnet.infura.io/v3/s3cr3t", config.PremiumURL())
	require.Equal(t, "https://mainnet.infura.io/v3/***", config.Redact(config.PremiumURL()))
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	config, err := LoadConfigFile(writeConfig(t, `
endpoints:
  rpcUrls: https://a.example
  chainId: 10
retry:
  timeout: 3s
  maxRetries: 0
  retryDelay: 250ms
  backoffMultiplier: 1.5
`))
	require.NoError(t, err)
	require.Equal(t, "https://a.example", config.Endpoints.RPCURLs)
	require.Equal(t, uint64(10), config.Endpoints.ChainID)
	require.Equal(t, DefaultPublicEndpoints, config.Endpoints.PublicEndpoints)
	require.Equal(t, RetryConfig{Timeout: 3 * time.Second, RetryDelay: 250 * time.Millisecond, BackoffMultiplier: 1.5}, config.Retry)
	require.True(t, config.Log.Enabled)
}

func TestLoadConfigFileErrors(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
		err  string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") }, "read config file"},
		{"malformed yaml", func(t *testing.T) string { return writeConfig(t, "endpoints: [") }, "parse config file"},
		{"invalid values", func(t *testing.T) string { return writeConfig(t, "retry:\n  backoffMultiplier: 0.5\n") }, "BackoffMultiplier"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := LoadConfigFile(tc.path(t))
			require.Nil(t, config)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.err)
		})
	}
}
