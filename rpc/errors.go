package rpc

import (
	"errors"
	"strings"
)

// ErrAllProvidersFailed is matched by every *AllProvidersFailedError.
var ErrAllProvidersFailed = errors.New("all RPC providers failed")

// EndpointFailure is why one candidate was given up on.
type EndpointFailure struct {
	URL string
	Err error
}

// AllProvidersFailedError lists every attempted endpoint, in attempt order.
type AllProvidersFailedError struct {
	Failures []EndpointFailure
	redact   func(string) string
}

func (e *AllProvidersFailedError) Error() string {
	redact := e.redact
	if redact == nil {
		redact = func(s string) string { return s }
	}

	var b strings.Builder
	b.WriteString(ErrAllProvidersFailed.Error())
	if len(e.Failures) == 0 {
		b.WriteString(": no candidate endpoints")
		return b.String()
	}
	b.WriteString(":")
	for _, f := range e.Failures {
		b.WriteString("\n  ")
		b.WriteString(redact(f.URL))
		b.WriteString(": ")
		b.WriteString(redact(f.Err.Error()))
	}
	return b.String()
}

func (e *AllProvidersFailedError) Is(target error) bool {
	return target == ErrAllProvidersFailed
}

func (e *AllProvidersFailedError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
