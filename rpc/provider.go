package rpc

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	ProviderConfigured = "configured"
	ProviderPremium    = "premium"
	ProviderPublic     = "public"
)

const (
	priorityHealthy = iota
	priorityUnknown
	priorityUnhealthy
)

type Provider struct {
	Key            string
	URL            string
	Priority       int
	ResponseTimeMs int64
}

// prepareProviders collects candidates in inclusion order: configured URLs, then the
// premium endpoint, then public ones. The first occurrence of a URL wins.
func (c *Client) prepareProviders() []Provider {
	providers := orderedmap.New[string, Provider]()
	add := func(key, url string) {
		if _, present := providers.Get(url); present {
			return
		}
		providers.Set(url, Provider{Key: key, URL: url})
	}

	for i, url := range c.endpoints.ConfiguredURLs() {
		add(fmt.Sprintf("%s-%d", ProviderConfigured, i), url)
	}
	if premium := c.endpoints.PremiumURL(); premium != "" {
		add(ProviderPremium, premium)
	}
	for i, url := range c.endpoints.PublicEndpoints {
		if url != "" {
			add(fmt.Sprintf("%s-%d", ProviderPublic, i), url)
		}
	}

	list := make([]Provider, 0, providers.Len())
	for pair := providers.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, c.withHealth(pair.Value))
	}
	return list
}

// withHealth assigns the priority derived from the endpoint's fresh health record.
func (c *Client) withHealth(p Provider) Provider {
	record, ok := c.health.Get(p.URL)
	switch {
	case !ok:
		p.Priority = priorityUnknown
	case record.IsHealthy:
		p.Priority = priorityHealthy
		p.ResponseTimeMs = record.ResponseTimeMs
	default:
		p.Priority = priorityUnhealthy
	}
	return p
}

func sortProviders(providers []Provider) {
	sort.SliceStable(providers, func(i, j int) bool {
		if providers[i].Priority != providers[j].Priority {
			return providers[i].Priority < providers[j].Priority
		}
		if providers[i].Priority == priorityHealthy {
			return providers[i].ResponseTimeMs < providers[j].ResponseTimeMs
		}
		return false
	})
}

// Providers returns the deduplicated candidates in attempt order: fresh healthy
// endpoints fastest first, then endpoints of unknown health, then fresh unhealthy
// ones. Ties keep inclusion order.
func (c *Client) Providers() []Provider {
	providers := c.prepareProviders()
	sortProviders(providers)
	return providers
}

// PrioritizedEndpoints returns the URLs of Providers.
func (c *Client) PrioritizedEndpoints() []string {
	providers := c.Providers()
	urls := make([]string, len(providers))
	for i, p := range providers {
		urls[i] = p.URL
	}
	return urls
}
