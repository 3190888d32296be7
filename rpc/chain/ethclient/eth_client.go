package ethclient

//go:generate mockgen -package=mock_ethclient -source=eth_client.go -destination=mock/client/ethclient/eth_client.go

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

type CallClient interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// EthClientInterface is a connection pinned to one endpoint and one expected chain.
type EthClientInterface interface {
	CallClient
	NetworkID(ctx context.Context) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	// Backend exposes the connection to generated contract bindings.
	Backend() bind.ContractBackend
	GetURL() string
	ExpectedChainID() uint64
	Close()
}

// Dialer creates connections. The caller owns every connection it returns.
type Dialer interface {
	Dial(ctx context.Context, url string, expectedChainID uint64) (EthClientInterface, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, url string, expectedChainID uint64) (EthClientInterface, error)

func (f DialerFunc) Dial(ctx context.Context, url string, expectedChainID uint64) (EthClientInterface, error) {
	return f(ctx, url, expectedChainID)
}

// DefaultDialer dials with go-ethereum's JSON-RPC client.
var DefaultDialer Dialer = DialerFunc(Dial)

// EthClient implements EthClientInterface
type EthClient struct {
	*ethclient.Client
	rpcClient       *rpc.Client
	url             string
	expectedChainID uint64
}

// Dial connects to url. HTTP endpoints are dialed lazily so errors here are
// limited to malformed URLs and websocket handshakes.
func Dial(ctx context.Context, url string, expectedChainID uint64) (EthClientInterface, error) {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewEthClient(rpcClient, url, expectedChainID), nil
}

func NewEthClient(rpcClient *rpc.Client, url string, expectedChainID uint64) *EthClient {
	return &EthClient{
		Client:          ethclient.NewClient(rpcClient),
		rpcClient:       rpcClient,
		url:             url,
		expectedChainID: expectedChainID,
	}
}

func (ec *EthClient) GetURL() string {
	return ec.url
}

func (ec *EthClient) ExpectedChainID() uint64 {
	return ec.expectedChainID
}

func (ec *EthClient) Backend() bind.ContractBackend {
	return ec.Client
}

func (ec *EthClient) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	return ec.rpcClient.CallContext(ctx, result, method, args...)
}
