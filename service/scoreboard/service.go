package scoreboard

import (
	"context"
	"html"
	"io"
	"strings"
	"time"

	"github.com/dewey/livescores/feed"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// Renderer is an interface for something that renders named templates
type Renderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

// Entry is a single match from the live scores feed, as it's handed to the template
type Entry struct {
	Title           string
	Summary         string
	Link            string
	GUID            string
	Published       string
	PublishedParsed *time.Time
}

type service struct {
	l       log.Logger
	fr      feed.Repository
	tr      Renderer
	p       *bluemonday.Policy
	feedURL string
	debug   bool
}

// NewService initializes a new scoreboard service. With debug enabled, rendering errors are shown on the error page.
func NewService(l log.Logger, fr feed.Repository, tr Renderer, feedURL string, debug bool) *service {
	return &service{
		l:       l,
		fr:      fr,
		tr:      tr,
		p:       bluemonday.StrictPolicy(),
		feedURL: feedURL,
		debug:   debug,
	}
}

// Scores fetches the feed and returns its entries in feed order. If the feed can't be fetched or parsed we log it and
// return an empty list, the page should still render.
func (s *service) Scores(ctx context.Context) []Entry {
	items, err := s.fr.Entries(ctx, s.feedURL)
	if err != nil {
		level.Error(s.l).Log("msg", "error fetching scores, rendering empty scoreboard", "feed_url", s.feedURL, "err", err)
		return []Entry{}
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, s.entry(item))
	}
	return entries
}

func (s *service) entry(item *gofeed.Item) Entry {
	return Entry{
		Title:           strings.TrimSpace(item.Title),
		Summary:         s.plainText(item.Description),
		Link:            item.Link,
		GUID:            item.GUID,
		Published:       item.Published,
		PublishedParsed: item.PublishedParsed,
	}
}

// plainText strips any markup from a feed description, the template takes care of escaping
func (s *service) plainText(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.p.Sanitize(text)))
}
