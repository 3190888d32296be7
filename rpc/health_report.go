package rpc

import (
	"context"

	"github.com/rewards-dashboard/rpcfallback/healthmanager/rpcstatus"
	"github.com/rewards-dashboard/rpcfallback/params"
)

// EndpointReport is one candidate with its latest fresh health record, if any.
type EndpointReport struct {
	Provider Provider
	Health   rpcstatus.EndpointHealth
	Known    bool
}

// CheckEndpoints probes every candidate once, in priority order, and reports the
// resulting health. Unlike the fallback traversal it does not stop at the first
// healthy endpoint and persists nothing.
func (c *Client) CheckEndpoints(ctx context.Context, chainID uint64, cfg *params.RetryConfig) ([]EndpointReport, error) {
	retry, err := params.ResolveRetryConfig(cfg)
	if err != nil {
		return nil, err
	}

	providers := c.Providers()
	for _, p := range providers {
		conn, err := c.factory.CreateRobustConnection(ctx, p.URL, chainID, retry)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err == nil {
			conn.Close()
		}
	}
	return c.Report(providers), nil
}

// Report pairs providers with their current health records.
func (c *Client) Report(providers []Provider) []EndpointReport {
	reports := make([]EndpointReport, len(providers))
	for i, p := range providers {
		record, ok := c.health.Get(p.URL)
		reports[i] = EndpointReport{Provider: p, Health: record, Known: ok}
	}
	return reports
}
