package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
)

const livescoresFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Cricinfo Live Scores</title>
<link>http://www.cricinfo.com</link>
<description>Latest scores from Cricinfo</description>
<item>
<title>Australia 255/4 * v India</title>
<link>http://www.cricinfo.com/ci/engine/match/1348655.html?CMP=OTC-RSS</link>
<description>Australia 255/4 * v India</description>
<guid>http://www.cricinfo.com/ci/engine/match/1348655.html</guid>
</item>
<item>
<title>Sri Lanka v New Zealand 373/10 *</title>
<link>http://www.cricinfo.com/ci/engine/match/1356904.html?CMP=OTC-RSS</link>
<description>Sri Lanka v New Zealand 373/10 *</description>
<guid>http://www.cricinfo.com/ci/engine/match/1356904.html</guid>
</item>
<item>
<title>Bangladesh v England</title>
<link>http://www.cricinfo.com/ci/engine/match/1351397.html?CMP=OTC-RSS</link>
<description>Bangladesh v England</description>
<guid>http://www.cricinfo.com/ci/engine/match/1351397.html</guid>
</item>
</channel>
</rss>`

func TestRepository_Entries(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantTitles []string
		wantErr    bool
	}{
		{
			name: "well formed feed keeps feed order",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/rss+xml")
				fmt.Fprint(w, livescoresFixture)
			},
			wantTitles: []string{"Australia 255/4 * v India", "Sri Lanka v New Zealand 373/10 *", "Bangladesh v England"},
		},
		{
			name: "feed without items",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Cricinfo Live Scores</title></channel></rss>`)
			},
			wantTitles: []string{},
		},
		{
			name: "upstream returns an error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: true,
		},
		{
			name: "upstream returns something that isn't a feed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "<html><body>maintenance</body></html>")
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			s := NewRepository(log.NewNopLogger(), 2*time.Second, "livescores-test")
			items, err := s.Entries(context.Background(), ts.URL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Entries() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(items) != len(tt.wantTitles) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantTitles))
			}
			for i, item := range items {
				if item.Title != tt.wantTitles[i] {
					t.Errorf("item %d: got %q, want %q", i, item.Title, tt.wantTitles[i])
				}
			}
		})
	}
}

func TestRepository_EntriesTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	s := NewRepository(log.NewNopLogger(), 50*time.Millisecond, "")
	start := time.Now()
	if _, err := s.Entries(context.Background(), ts.URL); err == nil {
		t.Fatal("expected an error for a hanging upstream")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("fetch took %s, expected it to be cut off by the timeout", elapsed)
	}
}

func TestRepository_EntriesFetchesEveryTime(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if got := r.Header.Get("User-Agent"); got != "livescores-test" {
			t.Errorf("got user agent %q, want %q", got, "livescores-test")
		}
		fmt.Fprint(w, livescoresFixture)
	}))
	defer ts.Close()

	s := NewRepository(log.NewNopLogger(), 2*time.Second, "livescores-test")
	for i := 0; i < 3; i++ {
		if _, err := s.Entries(context.Background(), ts.URL); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("got %d upstream calls, want 3", got)
	}
}

func TestMockRepository_Entries(t *testing.T) {
	s := NewMockRepository(log.NewNopLogger())
	items, err := s.Entries(context.Background(), "https://static.cricinfo.com/rss/livescores.xml")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(items) == 0 {
		t.Error("expected mocked entries")
	}
}
