package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// scrapeSource pulls headline text straight off the Moneycontrol markets
// listing page. It backstops the feeds when the RSS endpoints throttle.
type scrapeSource struct {
	timeout time.Duration
}

func newScrapeSource(timeout time.Duration) *scrapeSource {
	return &scrapeSource{timeout: timeout}
}

func (s *scrapeSource) Name() string { return "moneycontrol" }

func (s *scrapeSource) Fetch(ctx context.Context) ([]string, error) {
	c := colly.NewCollector(
		colly.AllowedDomains("www.moneycontrol.com"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	var headlines []string
	c.OnHTML("li.clearfix h2 a, li.clearfix h3 a", func(e *colly.HTMLElement) {
		if title := strings.TrimSpace(e.Text); title != "" {
			headlines = append(headlines, title)
		}
	})

	if err := c.Visit("https://www.moneycontrol.com/news/business/markets/"); err != nil {
		return nil, fmt.Errorf("scrape visit: %w", err)
	}
	c.Wait()
	return headlines, nil
}
