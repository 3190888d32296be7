package chain

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/rewards-dashboard/rpcfallback/healthmanager"
	"github.com/rewards-dashboard/rpcfallback/healthmanager/provider_errors"
	"github.com/rewards-dashboard/rpcfallback/healthmanager/rpcstatus"
	"github.com/rewards-dashboard/rpcfallback/metrics/rpcstats"
	"github.com/rewards-dashboard/rpcfallback/params"
	"github.com/rewards-dashboard/rpcfallback/rpc/chain/ethclient"
)

// ConnectionFactory produces validated connections to a single endpoint.
type ConnectionFactory struct {
	logger   *zap.Logger
	health   *healthmanager.HealthCache
	prober   *healthmanager.Prober
	dialer   ethclient.Dialer
	newTimer func() backoff.Timer
	redact   func(string) string
}

type Option func(*ConnectionFactory)

func WithDialer(dialer ethclient.Dialer) Option {
	return func(f *ConnectionFactory) {
		f.dialer = dialer
	}
}

// WithBackoffTimer replaces the timer used to wait between attempts.
func WithBackoffTimer(newTimer func() backoff.Timer) Option {
	return func(f *ConnectionFactory) {
		f.newTimer = newTimer
	}
}

// WithRedactor sets the function applied to endpoints before they are logged.
func WithRedactor(redact func(string) string) Option {
	return func(f *ConnectionFactory) {
		f.redact = redact
	}
}

func NewConnectionFactory(logger *zap.Logger, health *healthmanager.HealthCache, prober *healthmanager.Prober, opts ...Option) *ConnectionFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &ConnectionFactory{
		logger: logger.Named("connection-factory"),
		health: health,
		prober: prober,
		dialer: ethclient.DefaultDialer,
		redact: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRobustConnection returns a connection to url that answered a health probe for
// expectedChainID. An endpoint whose latest probe failed within the health TTL is
// skipped with ErrEndpointSkipped. Otherwise it is tried up to cfg.MaxRetries+1 times
// with exponential backoff between attempts, and ErrAttemptsExhausted is returned when
// none succeeds. The caller owns the returned connection.
func (f *ConnectionFactory) CreateRobustConnection(ctx context.Context, url string, expectedChainID uint64, cfg params.RetryConfig) (ethclient.EthClientInterface, error) {
	endpoint := f.redact(url)
	logger := f.logger.With(zap.String("endpoint", endpoint))

	if record, ok := f.health.Get(url); ok && !record.IsHealthy {
		logger.Info("skipping recently unhealthy endpoint",
			zap.String("lastError", f.redact(record.Error)),
			zap.Time("lastCheckedAt", record.LastCheckedAt))
		rpcstats.CountSkip(endpoint)
		return nil, fmt.Errorf("%w: %s", ErrEndpointSkipped, record.Error)
	}

	var (
		client   ethclient.EthClientInterface
		attempts int
	)
	operation := func() error {
		attempts++
		conn, elapsed, err := f.attempt(ctx, url, expectedChainID, cfg.Timeout)
		if err != nil && ctx.Err() != nil {
			// The caller gave up, this says nothing about the endpoint.
			return backoff.Permanent(ctx.Err())
		}

		rpcstats.CountProbe(endpoint, string(provider_errors.DetermineProbeErrorType(err)))
		f.health.Put(rpcstatus.NewEndpointHealth(rpcstatus.EndpointCallStatus{
			URL:          url,
			Timestamp:    f.health.Now(),
			ResponseTime: elapsed,
			Err:          err,
		}))

		if err != nil {
			logger.Warn("endpoint health check failed",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", cfg.MaxRetries+1),
				zap.String("error", f.redact(err.Error())))
			return err
		}

		rpcstats.ObserveProbeDuration(endpoint, elapsed)
		logger.Debug("endpoint healthy", zap.Int("attempt", attempts), zap.Duration("responseTime", elapsed))
		client = conn
		return nil
	}
	notify := func(_ error, delay time.Duration) {
		logger.Debug("retrying endpoint", zap.Duration("delay", delay))
	}

	var timer backoff.Timer
	if f.newTimer != nil {
		timer = f.newTimer()
	}

	if err := backoff.RetryNotifyWithTimer(operation, newBackOff(ctx, cfg), notify, timer); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempts, err)
	}
	return client, nil
}

// attempt dials url and probes it. The connection is closed unless the probe passes.
func (f *ConnectionFactory) attempt(ctx context.Context, url string, expectedChainID uint64, timeout time.Duration) (ethclient.EthClientInterface, time.Duration, error) {
	// The dial context only bounds connection setup, the connection outlives it.
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := f.dialer.Dial(dialCtx, url, expectedChainID)
	if err != nil {
		if dialCtx.Err() != nil && ctx.Err() == nil {
			return nil, 0, fmt.Errorf("%w: dial after %s: %w", provider_errors.ErrHealthCheckTimeout, timeout, err)
		}
		return nil, 0, fmt.Errorf("%w: dial: %w", provider_errors.ErrTransport, err)
	}

	elapsed, err := f.prober.Probe(ctx, client, timeout, expectedChainID)
	if err != nil {
		client.Close()
		return nil, 0, err
	}
	return client, elapsed, nil
}

// newBackOff yields RetryDelay * BackoffMultiplier^n before attempt n+2 and stops
// after MaxRetries retries.
func newBackOff(ctx context.Context, cfg params.RetryConfig) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.RetryDelay
	exp.Multiplier = cfg.BackoffMultiplier
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Duration(math.MaxInt64)
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(cfg.MaxRetries)), ctx)
}
