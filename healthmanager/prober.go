package healthmanager

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/rewards-dashboard/rpcfallback/healthmanager/provider_errors"
)

// NetworkReader is the part of a connection a probe needs.
type NetworkReader interface {
	NetworkID(ctx context.Context) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

type probeResult struct {
	networkID *big.Int
	chainID   *big.Int
	err       error
}

// Prober checks that an endpoint answers and serves the expected chain.
type Prober struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewProber(logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		logger: logger.Named("prober"),
		now:    time.Now,
	}
}

// Probe asks the endpoint for its network id and chain id, racing both calls against
// timeout. It returns the elapsed time on success. When the deadline fires first the
// in-flight calls are abandoned and their result is dropped.
func (p *Prober) Probe(ctx context.Context, client NetworkReader, timeout time.Duration, expectedChainID uint64) (time.Duration, error) {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := p.now()
	// Buffered so an abandoned probe can still deliver and exit.
	resultCh := make(chan probeResult, 1)
	go func() {
		networkID, err := client.NetworkID(probeCtx)
		if err != nil {
			resultCh <- probeResult{err: fmt.Errorf("%w: fetch network id: %w", provider_errors.ErrTransport, err)}
			return
		}
		chainID, err := client.ChainID(probeCtx)
		if err != nil {
			resultCh <- probeResult{err: fmt.Errorf("%w: fetch chain id: %w", provider_errors.ErrTransport, err)}
			return
		}
		resultCh <- probeResult{networkID: networkID, chainID: chainID}
	}()

	select {
	case <-probeCtx.Done():
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w after %s", provider_errors.ErrHealthCheckTimeout, timeout)
	case res := <-resultCh:
		if res.err != nil {
			// The transport may notice the deadline before the select does.
			if errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
				return 0, fmt.Errorf("%w after %s", provider_errors.ErrHealthCheckTimeout, timeout)
			}
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, res.err
		}
		if res.chainID == nil || !res.chainID.IsUint64() || res.chainID.Uint64() != expectedChainID {
			return 0, fmt.Errorf("%w: expected chain id %d, got %s", provider_errors.ErrWrongNetwork, expectedChainID, res.chainID)
		}

		elapsed := p.now().Sub(start)
		p.logger.Debug("probe succeeded",
			zap.Stringer("networkID", res.networkID),
			zap.Stringer("chainID", res.chainID),
			zap.Duration("elapsed", elapsed))
		return elapsed, nil
	}
}
