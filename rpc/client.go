// Package rpc picks a working Ethereum endpoint out of a prioritized candidate list
// and runs caller operations against it.
package rpc

import (
	"context"

	mapset "github.com/deckarep/golang-set"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rewards-dashboard/rpcfallback/healthmanager"
	"github.com/rewards-dashboard/rpcfallback/metrics/rpcstats"
	"github.com/rewards-dashboard/rpcfallback/params"
	"github.com/rewards-dashboard/rpcfallback/rpc/chain"
	"github.com/rewards-dashboard/rpcfallback/rpc/chain/ethclient"
	"github.com/rewards-dashboard/rpcfallback/rpc/endpointcache"
)

const (
	variantConnect = "connect"
	variantExecute = "execute"

	outcomeSuccess       = "success"
	outcomeAllFailed     = "all_failed"
	outcomeCancelled     = "cancelled"
	outcomeInvalidConfig = "invalid_config"
)

// Operation is run against a validated connection. The connection is closed when it returns.
type Operation[T any] func(ctx context.Context, client ethclient.EthClientInterface) (T, error)

// Client is the fallback executor. It is meant for one operation at a time.
type Client struct {
	logger    *zap.Logger
	endpoints params.EndpointsConfig

	health         *healthmanager.HealthCache
	factory        *chain.ConnectionFactory
	factoryOptions []chain.Option
	lastGood       *endpointcache.Cache
	storage        endpointcache.Storage
}

type Option func(*Client)

// WithHealthCache shares a health cache between clients.
func WithHealthCache(health *healthmanager.HealthCache) Option {
	return func(c *Client) {
		c.health = health
	}
}

// WithStorage replaces the file storage of the last known good endpoint.
func WithStorage(storage endpointcache.Storage) Option {
	return func(c *Client) {
		c.storage = storage
	}
}

// WithFactoryOptions is passed through to the connection factory.
func WithFactoryOptions(opts ...chain.Option) Option {
	return func(c *Client) {
		c.factoryOptions = append(c.factoryOptions, opts...)
	}
}

func NewClient(endpoints params.EndpointsConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		logger:    logger.Named("rpc-client"),
		endpoints: endpoints,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.health == nil {
		c.health = healthmanager.NewHealthCache(params.HealthRecordTTL)
	}
	if c.storage == nil {
		c.storage = endpointcache.NewFileStorage(endpoints.CacheDir)
	}

	factoryOptions := append([]chain.Option{chain.WithRedactor(c.endpoints.Redact)}, c.factoryOptions...)
	c.factory = chain.NewConnectionFactory(logger, c.health, healthmanager.NewProber(logger), factoryOptions...)
	c.lastGood = endpointcache.NewCache(c.storage, params.EndpointCacheKey, params.LastGoodEndpointTTL, logger,
		endpointcache.WithClock(c.health.Now),
		endpointcache.WithRedactor(c.endpoints.Redact))
	return c
}

// HealthCache exposes the client's endpoint health records.
func (c *Client) HealthCache() *healthmanager.HealthCache {
	return c.health
}

// CreateConnectionWithFallback returns a connection to the first candidate that
// passes its health checks. The caller owns the connection and must close it.
func (c *Client) CreateConnectionWithFallback(ctx context.Context, chainID uint64, cfg *params.RetryConfig) (ethclient.EthClientInterface, error) {
	var client ethclient.EthClientInterface
	err := c.fallback(ctx, chainID, cfg, variantConnect, func(_ context.Context, conn ethclient.EthClientInterface) error {
		client = conn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ExecuteWithFallback runs op against candidates until one connection completes it.
// A failing op counts as a failure of that candidate.
func ExecuteWithFallback[T any](ctx context.Context, c *Client, op Operation[T], chainID uint64, cfg *params.RetryConfig) (T, error) {
	var result T
	err := c.fallback(ctx, chainID, cfg, variantExecute, func(ctx context.Context, conn ethclient.EthClientInterface) error {
		defer conn.Close()
		res, err := op(ctx, conn)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// fallback tries the persisted endpoint first, then every prioritized endpoint not
// attempted yet, and stops at the first one for which use succeeds.
func (c *Client) fallback(ctx context.Context, chainID uint64, cfg *params.RetryConfig, variant string,
	use func(context.Context, ethclient.EthClientInterface) error) error {
	retry, err := params.ResolveRetryConfig(cfg)
	if err != nil {
		rpcstats.CountFallback(variant, outcomeInvalidConfig)
		return err
	}

	logger := c.logger.With(
		zap.String("traversal", uuid.NewString()),
		zap.String("variant", variant),
		zap.Uint64("chainID", chainID))
	failed := &AllProvidersFailedError{redact: c.endpoints.Redact}

	try := func(url string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		conn, err := c.factory.CreateRobustConnection(ctx, url, chainID, retry)
		if err == nil {
			err = use(ctx, conn)
		}
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			logger.Warn("endpoint failed, trying next",
				zap.String("endpoint", c.endpoints.Redact(url)),
				zap.String("error", c.endpoints.Redact(err.Error())))
			failed.Failures = append(failed.Failures, EndpointFailure{URL: url, Err: err})
			return false, nil
		}

		c.lastGood.Write(url)
		logger.Info("endpoint selected", zap.String("endpoint", c.endpoints.Redact(url)))
		return true, nil
	}

	done, err := c.traverse(try)
	switch {
	case err != nil:
		rpcstats.CountFallback(variant, outcomeCancelled)
		return err
	case done:
		rpcstats.CountFallback(variant, outcomeSuccess)
		return nil
	}

	logger.Error("all endpoints failed", zap.Int("attempted", len(failed.Failures)))
	rpcstats.CountFallback(variant, outcomeAllFailed)
	return failed
}

func (c *Client) traverse(try func(url string) (bool, error)) (bool, error) {
	// Each URL is attempted at most once per traversal.
	tried := mapset.NewSet()

	if cached, ok := c.lastGood.Read(); ok {
		tried.Add(cached)
		if done, err := try(cached); done || err != nil {
			return done, err
		}
	}

	// Prioritized after the cached attempt, which may have changed its health.
	for _, url := range c.PrioritizedEndpoints() {
		if tried.Contains(url) {
			continue
		}
		tried.Add(url)
		if done, err := try(url); done || err != nil {
			return done, err
		}
	}
	return false, nil
}
