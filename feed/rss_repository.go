package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
)

type repository struct {
	l         log.Logger
	c         *http.Client
	timeout   time.Duration
	userAgent string
}

// NewRepository initializes a new feed repository. Every call to Entries fetches the feed again, nothing is cached.
func NewRepository(l log.Logger, timeout time.Duration, userAgent string) *repository {
	return &repository{
		l:         l,
		c:         &http.Client{Timeout: timeout},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Entries fetches and parses the feed, items are returned in the order of the feed document
func (s *repository) Entries(ctx context.Context, feedURL string) ([]*gofeed.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.Client = s.c
	if s.userAgent != "" {
		fp.UserAgent = s.userAgent
	}

	start := time.Now()
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching feed %s", feedURL)
	}
	level.Debug(s.l).Log("msg", "fetched feed", "feed_url", feedURL, "entries", len(feed.Items), "duration", time.Since(start))
	return feed.Items, nil
}
