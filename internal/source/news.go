package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
)

// Headline is one news item from a configured feed.
type Headline struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// News fetches financial headlines from RSS feeds.
type News struct {
	feeds  []string
	parser *gofeed.Parser
}

// NewNews creates a news source for the given feed URLs.
func NewNews(feeds []string) *News {
	return &News{
		feeds:  feeds,
		parser: gofeed.NewParser(),
	}
}

// Name returns the data source name.
func (n *News) Name() string { return "headlines" }

// Headlines returns recent items across all configured feeds, newest first.
// Individual feed failures are skipped; an error is returned only when every
// feed fails.
func (n *News) Headlines(ctx context.Context, limit int) ([]Headline, error) {
	var all []Headline
	var errs []error

	for _, url := range n.feeds {
		items, err := n.fetchFeed(ctx, url)
		if err != nil {
			// Non-critical: skip failed feeds.
			errs = append(errs, err)
			continue
		}
		all = append(all, items...)
	}

	if len(all) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("all feeds failed: %w", errors.Join(errs...))
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Published.After(all[j].Published)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// fetchFeed parses one RSS feed into headlines.
func (n *News) fetchFeed(ctx context.Context, url string) ([]Headline, error) {
	feed, err := n.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	items := make([]Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		h := Headline{
			Source: feed.Title,
			Title:  item.Title,
			Link:   item.Link,
		}
		if item.PublishedParsed != nil {
			h.Published = *item.PublishedParsed
		}
		items = append(items, h)
	}
	return items, nil
}
