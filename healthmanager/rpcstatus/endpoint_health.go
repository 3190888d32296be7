package rpcstatus

import (
	"time"
)

// UnknownResponseTime marks a record whose probe did not complete.
const UnknownResponseTime int64 = -1

// EndpointHealth holds the outcome of the latest probe of a single endpoint.
type EndpointHealth struct {
	URL            string    `json:"url"`
	IsHealthy      bool      `json:"is_healthy"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	LastCheckedAt  time.Time `json:"last_checked_at"`
	Error          string    `json:"error,omitempty"`
}

// EndpointCallStatus represents the result of one probe attempt.
type EndpointCallStatus struct {
	URL          string
	Timestamp    time.Time
	ResponseTime time.Duration
	Err          error
}

// NewEndpointHealth processes EndpointCallStatus and returns a new EndpointHealth.
func NewEndpointHealth(res EndpointCallStatus) EndpointHealth {
	health := EndpointHealth{
		URL:           res.URL,
		LastCheckedAt: res.Timestamp,
	}

	if res.Err == nil {
		health.IsHealthy = true
		health.ResponseTimeMs = res.ResponseTime.Milliseconds()
	} else {
		health.ResponseTimeMs = UnknownResponseTime
		health.Error = res.Err.Error()
	}

	return health
}

// IsFresh reports whether the record is still trusted at now.
func (h EndpointHealth) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(h.LastCheckedAt) <= ttl
}
