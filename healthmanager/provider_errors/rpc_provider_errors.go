package provider_errors

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/rpc"
)

var (
	// ErrHealthCheckTimeout is returned when a probe does not finish within its timeout.
	ErrHealthCheckTimeout = errors.New("health check timeout")
	// ErrWrongNetwork is returned when an endpoint serves a different chain.
	ErrWrongNetwork = errors.New("wrong network")
	// ErrTransport wraps any underlying communication fault.
	ErrTransport = errors.New("transport error")
)

type ProbeErrorType string

const (
	ProbeErrorTypeNone           ProbeErrorType = "none"
	ProbeErrorTypeTimeout        ProbeErrorType = "timeout"
	ProbeErrorTypeWrongNetwork   ProbeErrorType = "wrong_network"
	ProbeErrorTypeMethodNotFound ProbeErrorType = "rpc_method_not_found"
	ProbeErrorTypeTransport      ProbeErrorType = "transport"
	ProbeErrorTypeCancelled      ProbeErrorType = "cancelled"
	ProbeErrorTypeOther          ProbeErrorType = "other"
)

func IsRPCError(err error) (rpc.Error, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}

func IsMethodNotFoundError(err error) bool {
	if rpcErr, ok := IsRPCError(err); ok {
		return rpcErr.ErrorCode() == -32601
	}
	return false
}

// DetermineProbeErrorType determines the ProbeErrorType based on the error.
func DetermineProbeErrorType(err error) ProbeErrorType {
	switch {
	case err == nil:
		return ProbeErrorTypeNone
	case errors.Is(err, ErrHealthCheckTimeout):
		return ProbeErrorTypeTimeout
	case errors.Is(err, ErrWrongNetwork):
		return ProbeErrorTypeWrongNetwork
	case errors.Is(err, context.Canceled):
		return ProbeErrorTypeCancelled
	case IsMethodNotFoundError(err):
		return ProbeErrorTypeMethodNotFound
	case errors.Is(err, ErrTransport):
		return ProbeErrorTypeTransport
	default:
		return ProbeErrorTypeOther
	}
}
