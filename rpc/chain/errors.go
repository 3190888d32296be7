package chain

import "errors"

var (
	// ErrEndpointSkipped is returned without any network I/O when the endpoint failed
	// its latest health check and that result is still fresh.
	ErrEndpointSkipped = errors.New("endpoint skipped: recently unhealthy")
	// ErrAttemptsExhausted is returned once every attempt against the endpoint failed.
	ErrAttemptsExhausted = errors.New("endpoint attempts exhausted")
)
