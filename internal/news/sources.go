package news

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func newRestyClient(timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	return client
}

// newsAPISource queries the NewsAPI "everything" endpoint for one topic,
// dated today. Without NEWS_API_KEY it contributes nothing.
type newsAPISource struct {
	client *resty.Client
	query  string
}

func newNewsAPISource(query string, timeout time.Duration) *newsAPISource {
	return &newsAPISource{client: newRestyClient(timeout), query: query}
}

func (s *newsAPISource) Name() string { return "newsapi:" + s.query }

func (s *newsAPISource) Fetch(ctx context.Context) ([]string, error) {
	apiKey := os.Getenv("NEWS_API_KEY")
	if apiKey == "" {
		return nil, nil
	}

	var out struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"articles"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        s.query + " " + time.Now().Format("2006-01-02"),
			"language": "en",
			"apiKey":   apiKey,
		}).
		SetResult(&out).
		Get("https://newsapi.org/v2/everything")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("newsapi http %d", resp.StatusCode())
	}

	headlines := make([]string, 0, len(out.Articles))
	for _, a := range out.Articles {
		if h := firstNonEmpty(a.Description, a.Title); h != "" {
			headlines = append(headlines, h)
		}
	}
	return headlines, nil
}

// finnhubSource pulls the Finnhub general news headlines. Without
// FINNHUB_API_KEY it contributes nothing.
type finnhubSource struct {
	client *resty.Client
}

func newFinnhubSource(timeout time.Duration) *finnhubSource {
	return &finnhubSource{client: newRestyClient(timeout)}
}

func (s *finnhubSource) Name() string { return "finnhub" }

func (s *finnhubSource) Fetch(ctx context.Context) ([]string, error) {
	token := os.Getenv("FINNHUB_API_KEY")
	if token == "" {
		return nil, nil
	}

	var out []struct {
		Headline string `json:"headline"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"category": "general", "token": token}).
		SetResult(&out).
		Get("https://finnhub.io/api/v1/news")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("finnhub http %d", resp.StatusCode())
	}

	headlines := make([]string, 0, len(out))
	for _, a := range out {
		if a.Headline != "" {
			headlines = append(headlines, a.Headline)
		}
	}
	return headlines, nil
}

// rssSource reads item titles from one RSS feed.
type rssSource struct {
	client *resty.Client
	url    string
}

type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []struct {
			Title       string `xml:"title"`
			Description string `xml:"description"`
		} `xml:"item"`
	} `xml:"channel"`
}

func newRSSSource(url string, timeout time.Duration) *rssSource {
	return &rssSource{client: newRestyClient(timeout), url: url}
}

func (s *rssSource) Name() string { return "rss:" + s.url }

func (s *rssSource) Fetch(ctx context.Context) ([]string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("rss http %d", resp.StatusCode())
	}

	var doc rssDoc
	if err := xml.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("rss parse: %w", err)
	}
	if len(doc.Channel.Items) == 0 {
		return nil, errors.New("rss feed has no items")
	}

	headlines := make([]string, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		h := strings.TrimSpace(item.Title)
		if h == "" {
			h = htmlText(item.Description)
		}
		if h != "" {
			headlines = append(headlines, h)
		}
	}
	return headlines, nil
}

// htmlText strips markup from an HTML fragment, keeping visible text.
// Feed descriptions frequently embed anchors and image tags.
func htmlText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
