package params

import "time"

// MainnetChainID is the chain the dashboard contracts live on.
const MainnetChainID uint64 = 1

const (
	DefaultProbeTimeout      = 10 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryDelay        = time.Second
	DefaultBackoffMultiplier = 2.0

	// HealthRecordTTL is how long a probe outcome is trusted.
	HealthRecordTTL = 5 * time.Minute

	// LastGoodEndpointTTL is how long the persisted endpoint is tried first.
	LastGoodEndpointTTL = time.Hour

	// EndpointCacheKey is the file name of the persisted endpoint, relative to CacheDir.
	EndpointCacheKey = ".rpc-endpoint-cache.json"
)

// DefaultPremiumURLTemplate is the keyed mainnet endpoint.
const DefaultPremiumURLTemplate = "https://mainnet.infura.io/v3/%s"

// DefaultPublicEndpoints are keyless mainnet endpoints, most reliable first.
var DefaultPublicEndpoints = []string{
	"https://eth.llamarpc.com",
	"https://ethereum-rpc.publicnode.com",
	"https://rpc.ankr.com/eth",
	"https://eth.drpc.org",
	"https://cloudflare-eth.com",
}
