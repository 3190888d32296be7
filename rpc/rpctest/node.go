// Package rpctest runs in-process JSON-RPC nodes for tests.
package rpctest

import (
	"errors"
	"math/big"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Node is a minimal Ethereum node answering net_version, eth_chainId and eth_blockNumber.
type Node struct {
	URL string

	chainID     uint64
	blockNumber uint64
	failing     atomic.Bool
	calls       atomic.Int64
}

type ethService struct{ node *Node }

func (s *ethService) ChainId() (*hexutil.Big, error) {
	s.node.calls.Add(1)
	if s.node.failing.Load() {
		return nil, errors.New("node unavailable")
	}
	return (*hexutil.Big)(new(big.Int).SetUint64(s.node.chainID)), nil
}

func (s *ethService) BlockNumber() (hexutil.Uint64, error) {
	s.node.calls.Add(1)
	if s.node.failing.Load() {
		return 0, errors.New("node unavailable")
	}
	return hexutil.Uint64(s.node.blockNumber), nil
}

type netService struct{ node *Node }

func (s *netService) Version() (string, error) {
	s.node.calls.Add(1)
	if s.node.failing.Load() {
		return "", errors.New("node unavailable")
	}
	return strconv.FormatUint(s.node.chainID, 10), nil
}

// NewNode starts a node serving chainID over HTTP. It is stopped when the test ends.
func NewNode(t testing.TB, chainID uint64, blockNumber uint64) *Node {
	t.Helper()

	node := &Node{chainID: chainID, blockNumber: blockNumber}
	server := rpc.NewServer()
	if err := server.RegisterName("eth", &ethService{node: node}); err != nil {
		t.Fatal(err)
	}
	if err := server.RegisterName("net", &netService{node: node}); err != nil {
		t.Fatal(err)
	}

	httpServer := httptest.NewServer(server)
	node.URL = httpServer.URL
	t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})
	return node
}

// SetFailing makes every method return an error.
func (n *Node) SetFailing(failing bool) {
	n.failing.Store(failing)
}

// Calls returns the number of method calls served so far.
func (n *Node) Calls() int64 {
	return n.calls.Load()
}
