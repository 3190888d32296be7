package rpc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rewards-dashboard/rpcfallback/params"
	"github.com/rewards-dashboard/rpcfallback/rpc"
	"github.com/rewards-dashboard/rpcfallback/rpc/chain/ethclient"
	"github.com/rewards-dashboard/rpcfallback/rpc/rpctest"
)

func fastRetry() *params.RetryConfig {
	return &params.RetryConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        1,
		RetryDelay:        10 * time.Millisecond,
		BackoffMultiplier: 2,
	}
}

func TestExecuteWithFallbackAgainstNodes(t *testing.T) {
	down := rpctest.NewNode(t, 1, 100)
	down.SetFailing(true)
	otherChain := rpctest.NewNode(t, 137, 200)
	up := rpctest.NewNode(t, 1, 300)

	cacheDir := t.TempDir()
	endpoints := params.EndpointsConfig{
		RPCURLs:  strings.Join([]string{down.URL, otherChain.URL, up.URL}, ","),
		ChainID:  1,
		CacheDir: cacheDir,
	}
	client := rpc.NewClient(endpoints, nil)

	number, err := rpc.ExecuteWithFallback(context.Background(), client,
		func(ctx context.Context, c ethclient.EthClientInterface) (uint64, error) {
			return c.BlockNumber(ctx)
		}, 1, fastRetry())
	require.NoError(t, err)
	require.Equal(t, uint64(300), number)

	data, err := os.ReadFile(filepath.Join(cacheDir, params.EndpointCacheKey))
	require.NoError(t, err)
	require.Contains(t, string(data), up.URL)

	// The healthy node now leads and the persisted one is dialed first.
	require.Equal(t, up.URL, client.PrioritizedEndpoints()[0])
	downCalls := down.Calls()
	conn, err := client.CreateConnectionWithFallback(context.Background(), 1, fastRetry())
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, up.URL, conn.GetURL())
	require.Equal(t, downCalls, down.Calls())
}

func TestAllNodesDown(t *testing.T) {
	first := rpctest.NewNode(t, 1, 1)
	second := rpctest.NewNode(t, 1, 1)
	first.SetFailing(true)
	second.SetFailing(true)

	client := rpc.NewClient(params.EndpointsConfig{
		RPCURLs:  first.URL + "," + second.URL,
		ChainID:  1,
		CacheDir: t.TempDir(),
	}, nil)

	_, err := client.CreateConnectionWithFallback(context.Background(), 1, fastRetry())
	require.ErrorIs(t, err, rpc.ErrAllProvidersFailed)
	require.Len(t, strings.Split(err.Error(), "\n"), 3)

	// Each node got two probe attempts, each stopping at the failed net_version call.
	require.Equal(t, int64(2), first.Calls())
	require.Equal(t, int64(2), second.Calls())
}
