package metrics

import (
	"context"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name of the CLI.
const PushJob = "rpcfallback"

// Push replaces the metrics of job on the Pushgateway at url with everything gatherer
// holds. One-shot commands call it on exit since they rarely live long enough to be scraped.
func Push(ctx context.Context, url string, job string, gatherer prom.Gatherer) error {
	if gatherer == nil {
		gatherer = prom.DefaultGatherer
	}
	return push.New(url, job).Gatherer(gatherer).PushContext(ctx)
}
