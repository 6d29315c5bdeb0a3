package feed

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mmcdole/gofeed"
)

type mockRepository struct {
	l     log.Logger
	items []*gofeed.Item
}

// NewMockRepository initializes a feed repository returning a fixed set of matches, to work on the page without
// hitting the live feed
func NewMockRepository(l log.Logger) *mockRepository {
	published := time.Date(2023, time.March, 9, 4, 30, 0, 0, time.UTC)
	return &mockRepository{
		l: l,
		items: []*gofeed.Item{
			{
				Title:           "Australia 255/4 * v India",
				Description:     "Australia 255/4 * v India",
				Link:            "http://www.cricinfo.com/ci/engine/match/1348655.html?CMP=OTC-RSS",
				GUID:            "http://www.cricinfo.com/ci/engine/match/1348655.html",
				Published:       published.Format(time.RFC1123Z),
				PublishedParsed: &published,
			},
			{
				Title:       "Sri Lanka v New Zealand 373/10 *",
				Description: "Sri Lanka v New Zealand 373/10 *",
				Link:        "http://www.cricinfo.com/ci/engine/match/1356904.html?CMP=OTC-RSS",
				GUID:        "http://www.cricinfo.com/ci/engine/match/1356904.html",
			},
			{
				Title:       "Bangladesh v England",
				Description: "Bangladesh v England",
				Link:        "http://www.cricinfo.com/ci/engine/match/1351397.html?CMP=OTC-RSS",
				GUID:        "http://www.cricinfo.com/ci/engine/match/1351397.html",
			},
		},
	}
}

func (s *mockRepository) Entries(ctx context.Context, feedURL string) ([]*gofeed.Item, error) {
	level.Debug(s.l).Log("msg", "returning mocked feed entries", "feed_url", feedURL, "entries", len(s.items))
	return s.items, nil
}
