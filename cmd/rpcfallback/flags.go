package main

import (
	"github.com/urfave/cli/v2"

	"github.com/rewards-dashboard/rpcfallback/params"
)

const (
	ConfigFlag            = "config"
	RPCURLsFlag           = "rpc-urls"
	APIKeyFlag            = "api-key"
	ChainIDFlag           = "chain-id"
	CacheDirFlag          = "cache-dir"
	TimeoutFlag           = "timeout"
	MaxRetriesFlag        = "max-retries"
	RetryDelayFlag        = "retry-delay"
	BackoffMultiplierFlag = "backoff-multiplier"
	LogLevelFlag          = "log-level"
	LogFileFlag           = "log-file"
	LogJSONFlag           = "log-json"
	MetricsAddrFlag       = "metrics-addr"
	MetricsPushURLFlag    = "metrics-push-url"
	ProbeFlag             = "probe"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:  ConfigFlag,
			Usage: "YAML configuration file, flags override its values",
		},
		&cli.StringFlag{
			Name:    RPCURLsFlag,
			Usage:   "Comma separated RPC endpoints tried before the built-in ones",
			EnvVars: []string{"RPC_URLS"},
		},
		&cli.StringFlag{
			Name:    APIKeyFlag,
			Usage:   "API key of the premium endpoint",
			EnvVars: []string{"RPC_API_KEY"},
		},
		&cli.Uint64Flag{
			Name:    ChainIDFlag,
			Usage:   "Chain id every endpoint must serve",
			Value:   params.MainnetChainID,
			EnvVars: []string{"RPC_CHAIN_ID"},
		},
		&cli.PathFlag{
			Name:  CacheDirFlag,
			Usage: "Directory of the last known good endpoint file",
			Value: ".",
		},
		&cli.DurationFlag{
			Name:  TimeoutFlag,
			Usage: "Health probe timeout",
			Value: params.DefaultProbeTimeout,
		},
		&cli.IntFlag{
			Name:  MaxRetriesFlag,
			Usage: "Retries per endpoint after the first attempt",
			Value: params.DefaultMaxRetries,
		},
		&cli.DurationFlag{
			Name:  RetryDelayFlag,
			Usage: "Delay before the first retry",
			Value: params.DefaultRetryDelay,
		},
		&cli.Float64Flag{
			Name:  BackoffMultiplierFlag,
			Usage: "Factor applied to the delay after every retry",
			Value: params.DefaultBackoffMultiplier,
		},
		&cli.StringFlag{
			Name:  LogLevelFlag,
			Usage: "Log level: DEBUG, INFO, WARN or ERROR",
			Value: "INFO",
		},
		&cli.PathFlag{
			Name:  LogFileFlag,
			Usage: "Write logs to a rotated file instead of stderr",
		},
		&cli.BoolFlag{
			Name:  LogJSONFlag,
			Usage: "Encode logs as JSON",
		},
		&cli.StringFlag{
			Name:  MetricsAddrFlag,
			Usage: "Serve /metrics and /health on this address while the command runs, for debugging, e.g. :9090",
		},
		&cli.StringFlag{
			Name:  MetricsPushURLFlag,
			Usage: "Push the metrics to this Pushgateway when the command exits",
		},
	}
}

// loadConfig starts from the defaults or the config file and applies the flags set
// on the command line or through the environment.
func loadConfig(cCtx *cli.Context) (*params.Config, error) {
	config := params.NewConfig()
	if path := cCtx.Path(ConfigFlag); path != "" {
		var err error
		if config, err = params.LoadConfigFile(path); err != nil {
			return nil, err
		}
	}

	if cCtx.IsSet(RPCURLsFlag) {
		config.Endpoints.RPCURLs = cCtx.String(RPCURLsFlag)
	}
	if cCtx.IsSet(APIKeyFlag) {
		config.Endpoints.APIKey = cCtx.String(APIKeyFlag)
	}
	if cCtx.IsSet(ChainIDFlag) {
		config.Endpoints.ChainID = cCtx.Uint64(ChainIDFlag)
	}
	if cCtx.IsSet(CacheDirFlag) {
		config.Endpoints.CacheDir = cCtx.Path(CacheDirFlag)
	}
	if cCtx.IsSet(TimeoutFlag) {
		config.Retry.Timeout = cCtx.Duration(TimeoutFlag)
	}
	if cCtx.IsSet(MaxRetriesFlag) {
		config.Retry.MaxRetries = cCtx.Int(MaxRetriesFlag)
	}
	if cCtx.IsSet(RetryDelayFlag) {
		config.Retry.RetryDelay = cCtx.Duration(RetryDelayFlag)
	}
	if cCtx.IsSet(BackoffMultiplierFlag) {
		config.Retry.BackoffMultiplier = cCtx.Float64(BackoffMultiplierFlag)
	}
	if cCtx.IsSet(LogLevelFlag) {
		config.Log.Level = cCtx.String(LogLevelFlag)
	}
	if cCtx.IsSet(LogFileFlag) {
		config.Log.File = cCtx.Path(LogFileFlag)
	}
	if cCtx.IsSet(LogJSONFlag) {
		config.Log.JSON = cCtx.Bool(LogJSONFlag)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
