// Package news fetches cricket headlines from an RSS feed.
package news

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mmcdole/gofeed"
)

// headlineLimit caps how many items a single /news reply carries.
const headlineLimit = 5

const maxBodySize = 5 * 1024 * 1024

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Item is a single headline.
type Item struct {
	Title     string
	Link      string
	Published string
}

// Fetcher downloads and parses the news feed.
type Fetcher struct {
	client HTTPClient
	url    string
}

// New creates a Fetcher for the given feed URL.
func New(client HTTPClient, url string) *Fetcher {
	return &Fetcher{client: client, url: url}
}

// Headlines returns the most recent items from the feed.
func (f *Fetcher) Headlines(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "cricbot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]Item, 0, headlineLimit)
	for _, it := range feed.Items {
		if len(items) == headlineLimit {
			break
		}
		item := Item{Title: it.Title, Link: it.Link}
		if it.PublishedParsed != nil {
			item.Published = it.PublishedParsed.UTC().Format("2006-01-02 15:04 UTC")
		}
		items = append(items, item)
	}
	return items, nil
}
