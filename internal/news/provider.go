// Package news collects market headlines from several independent sources.
// Any source may fail (timeout, non-200, malformed payload, missing API
// key); a failed source simply contributes no headlines.
package news

import (
	"context"
	"time"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/store"
)

// Source fetches zero or more headline strings.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]string, error)
}

// Provider fans in all configured sources with a per-source timeout.
type Provider struct {
	sources []Source
	timeout time.Duration
}

// NewProvider builds the default source set: NewsAPI queries, Finnhub
// general news, the configured RSS feeds, and the Moneycontrol markets
// page scrape.
func NewProvider(cfg *store.Config) *Provider {
	timeout := time.Duration(cfg.News.TimeoutSeconds) * time.Second

	sources := make([]Source, 0, len(cfg.News.Queries)+len(cfg.News.Feeds)+2)
	for _, q := range cfg.News.Queries {
		sources = append(sources, newNewsAPISource(q, timeout))
	}
	sources = append(sources, newFinnhubSource(timeout))
	for _, feed := range cfg.News.Feeds {
		sources = append(sources, newRSSSource(feed, timeout))
	}
	sources = append(sources, newScrapeSource(timeout))

	return &Provider{sources: sources, timeout: timeout}
}

// NewProviderWithSources is used by tests and callers wiring custom sources.
func NewProviderWithSources(timeout time.Duration, sources ...Source) *Provider {
	return &Provider{sources: sources, timeout: timeout}
}

// Headlines fetches from every source, tolerating individual failures.
func (p *Provider) Headlines(ctx context.Context) []string {
	var all []string
	for _, s := range p.sources {
		sctx, cancel := context.WithTimeout(ctx, p.timeout)
		headlines, err := s.Fetch(sctx)
		cancel()
		if err != nil {
			logger.Warn(ctx, "News source failed", "source", s.Name(), "error", err)
			continue
		}
		all = append(all, headlines...)
	}
	logger.Debug(ctx, "Headlines collected", "count", len(all), "sources", len(p.sources))
	return all
}
