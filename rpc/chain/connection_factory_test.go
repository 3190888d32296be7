package chain

import (
	"context"
	"errors"
	"math/big"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rewards-dashboard/rpcfallback/healthmanager"
	"github.com/rewards-dashboard/rpcfallback/healthmanager/provider_errors"
	"github.com/rewards-dashboard/rpcfallback/healthmanager/rpcstatus"
	"github.com/rewards-dashboard/rpcfallback/params"
	"github.com/rewards-dashboard/rpcfallback/rpc/chain/ethclient"
	mock_ethclient "github.com/rewards-dashboard/rpcfallback/rpc/chain/ethclient/mock/client/ethclient"
)

const testURL = "https://node.example"

// recordingTimer fires immediately and remembers every requested delay.
type recordingTimer struct {
	delays *[]time.Duration
	c      chan time.Time
}

func (t *recordingTimer) Start(d time.Duration) {
	*t.delays = append(*t.delays, d)
	t.c = make(chan time.Time, 1)
	t.c <- time.Now()
}

func (t *recordingTimer) Stop() {}

func (t *recordingTimer) C() <-chan time.Time {
	return t.c
}

type ConnectionFactorySuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	dialer  *mock_ethclient.MockDialer
	now     time.Time
	health  *healthmanager.HealthCache
	delays  []time.Duration
	factory *ConnectionFactory
}

func TestConnectionFactorySuite(t *testing.T) {
	suite.Run(t, new(ConnectionFactorySuite))
}

func (s *ConnectionFactorySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.dialer = mock_ethclient.NewMockDialer(s.ctrl)
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.health = healthmanager.NewHealthCache(params.HealthRecordTTL, healthmanager.WithClock(func() time.Time { return s.now }))
	s.delays = nil
	s.factory = NewConnectionFactory(nil, s.health, healthmanager.NewProber(nil),
		WithDialer(s.dialer),
		WithBackoffTimer(func() backoff.Timer { return &recordingTimer{delays: &s.delays} }),
	)
}

func (s *ConnectionFactorySuite) retryConfig(maxRetries int) params.RetryConfig {
	return params.RetryConfig{
		Timeout:           time.Second,
		MaxRetries:        maxRetries,
		RetryDelay:        time.Second,
		BackoffMultiplier: 2,
	}
}

func (s *ConnectionFactorySuite) healthyClient(chainID int64) *mock_ethclient.MockEthClientInterface {
	client := mock_ethclient.NewMockEthClientInterface(s.ctrl)
	client.EXPECT().NetworkID(gomock.Any()).Return(big.NewInt(chainID), nil)
	client.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(chainID), nil)
	return client
}

func (s *ConnectionFactorySuite) failingClient(err error) *mock_ethclient.MockEthClientInterface {
	client := mock_ethclient.NewMockEthClientInterface(s.ctrl)
	client.EXPECT().NetworkID(gomock.Any()).Return(nil, err)
	client.EXPECT().Close()
	return client
}

func (s *ConnectionFactorySuite) TestHealthyOnFirstAttempt() {
	client := s.healthyClient(1)
	s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).Return(client, nil)

	conn, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(3))
	s.Require().NoError(err)
	s.Equal(client, conn)
	s.Empty(s.delays)

	record, ok := s.health.Get(testURL)
	s.Require().True(ok)
	s.True(record.IsHealthy)
	s.GreaterOrEqual(record.ResponseTimeMs, int64(0))
	s.Equal(s.now, record.LastCheckedAt)
}

func (s *ConnectionFactorySuite) TestAttemptsBoundedByMaxRetries() {
	for _, maxRetries := range []int{0, 1, 3} {
		s.SetupTest()
		refused := errors.New("connection refused")
		s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).
			DoAndReturn(func(context.Context, string, uint64) (ethclient.EthClientInterface, error) {
				return s.failingClient(refused), nil
			}).Times(maxRetries + 1)

		conn, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(maxRetries))
		s.Nil(conn)
		s.ErrorIs(err, ErrAttemptsExhausted)
		s.ErrorIs(err, provider_errors.ErrTransport)
		s.Len(s.delays, maxRetries)
		s.ctrl.Finish()
	}
}

func (s *ConnectionFactorySuite) TestBackoffDelays() {
	s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).
		DoAndReturn(func(context.Context, string, uint64) (ethclient.EthClientInterface, error) {
			return s.failingClient(errors.New("refused")), nil
		}).Times(3)

	_, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(2))
	s.Require().ErrorIs(err, ErrAttemptsExhausted)
	s.Equal([]time.Duration{time.Second, 2 * time.Second}, s.delays)
}

func (s *ConnectionFactorySuite) TestRecoversOnRetry() {
	gomock.InOrder(
		s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).Return(s.failingClient(errors.New("refused")), nil),
		s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).Return(s.healthyClient(1), nil),
	)

	conn, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(3))
	s.Require().NoError(err)
	s.NotNil(conn)
	s.Equal([]time.Duration{time.Second}, s.delays)

	record, ok := s.health.Get(testURL)
	s.Require().True(ok)
	s.True(record.IsHealthy)
}

func (s *ConnectionFactorySuite) TestFailureRecordedInHealthCache() {
	s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).Return(nil, errors.New("bad scheme"))

	_, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(0))
	s.Require().ErrorIs(err, ErrAttemptsExhausted)

	record, ok := s.health.Get(testURL)
	s.Require().True(ok)
	s.False(record.IsHealthy)
	s.Equal(rpcstatus.UnknownResponseTime, record.ResponseTimeMs)
	s.Contains(record.Error, "bad scheme")
}

func (s *ConnectionFactorySuite) TestWrongNetworkIsAFailedAttempt() {
	client := mock_ethclient.NewMockEthClientInterface(s.ctrl)
	client.EXPECT().NetworkID(gomock.Any()).Return(big.NewInt(137), nil)
	client.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(137), nil)
	client.EXPECT().Close()
	s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).Return(client, nil)

	_, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(0))
	s.ErrorIs(err, ErrAttemptsExhausted)
	s.ErrorIs(err, provider_errors.ErrWrongNetwork)
}

func (s *ConnectionFactorySuite) TestSkipsFreshUnhealthyEndpoint() {
	s.health.Put(rpcstatus.EndpointHealth{
		URL:            testURL,
		IsHealthy:      false,
		ResponseTimeMs: rpcstatus.UnknownResponseTime,
		LastCheckedAt:  s.now.Add(-time.Minute),
		Error:          "timeout",
	})

	// No Dial expectation: any dial fails the test.
	conn, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(3))
	s.Nil(conn)
	s.ErrorIs(err, ErrEndpointSkipped)
	s.NotErrorIs(err, ErrAttemptsExhausted)
}

func (s *ConnectionFactorySuite) TestStaleUnhealthyRecordIsProbedAgain() {
	s.health.Put(rpcstatus.EndpointHealth{
		URL:           testURL,
		IsHealthy:     false,
		LastCheckedAt: s.now.Add(-params.HealthRecordTTL - time.Second),
		Error:         "timeout",
	})
	s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).Return(s.healthyClient(1), nil)

	conn, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, s.retryConfig(3))
	s.Require().NoError(err)
	s.NotNil(conn)
}

func (s *ConnectionFactorySuite) TestCancelledContextLeavesHealthUntouched() {
	ctx, cancel := context.WithCancel(context.Background())
	s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).
		DoAndReturn(func(context.Context, string, uint64) (ethclient.EthClientInterface, error) {
			cancel()
			return nil, context.Canceled
		})

	_, err := s.factory.CreateRobustConnection(ctx, testURL, 1, s.retryConfig(3))
	s.ErrorIs(err, context.Canceled)
	s.NotErrorIs(err, ErrAttemptsExhausted)

	_, ok := s.health.Get(testURL)
	s.False(ok)
}

func (s *ConnectionFactorySuite) TestDialBoundedByProbeTimeout() {
	s.dialer.EXPECT().Dial(gomock.Any(), testURL, uint64(1)).
		DoAndReturn(func(ctx context.Context, _ string, _ uint64) (ethclient.EthClientInterface, error) {
			_, ok := ctx.Deadline()
			s.True(ok, "dial context carries a deadline")
			<-ctx.Done()
			return nil, ctx.Err()
		})

	cfg := s.retryConfig(0)
	cfg.Timeout = 50 * time.Millisecond
	_, err := s.factory.CreateRobustConnection(context.Background(), testURL, 1, cfg)
	s.ErrorIs(err, ErrAttemptsExhausted)
	s.ErrorIs(err, provider_errors.ErrHealthCheckTimeout)

	record, ok := s.health.Get(testURL)
	s.Require().True(ok)
	s.False(record.IsHealthy)
}

// silentListener accepts TCP connections and never writes to them.
func silentListener(t *testing.T) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		listener.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, conn := range conns {
			conn.Close()
		}
	})
	return listener.Addr().String()
}

func TestWebsocketHandshakeBoundedByProbeTimeout(t *testing.T) {
	url := "ws://" + silentListener(t)
	factory := NewConnectionFactory(nil, healthmanager.NewHealthCache(params.HealthRecordTTL), healthmanager.NewProber(nil))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := factory.CreateRobustConnection(ctx, url, 1, params.RetryConfig{
		Timeout:           200 * time.Millisecond,
		MaxRetries:        0,
		BackoffMultiplier: 1,
	})
	require.Less(t, time.Since(start), 2*time.Second)
	require.NoError(t, ctx.Err())
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	require.ErrorIs(t, err, provider_errors.ErrHealthCheckTimeout)
}
