package feed

import (
	"context"

	"github.com/mmcdole/gofeed"
)

// Repository is an interface for a RSS Feed fetcher
type Repository interface {
	Entries(ctx context.Context, feedURL string) ([]*gofeed.Item, error)
}
