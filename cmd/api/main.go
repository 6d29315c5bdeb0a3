package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dewey/livescores/feed"
	"github.com/dewey/livescores/service/scoreboard"
	"github.com/dewey/livescores/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/peterbourgon/ff/v3"
)

func main() {
	fs := flag.NewFlagSet("livescores", flag.ExitOnError)
	var (
		environment  = fs.String("environment", "develop", "the environment we are running in")
		port         = fs.String("port", "5000", "the port livescores is running on")
		feedURL      = fs.String("feed-url", "https://static.cricinfo.com/rss/livescores.xml", "the direct url to the live scores feed")
		fetchTimeout = fs.Duration("fetch-timeout", 5*time.Second, "how long we wait for the feed before rendering an empty scoreboard")
		userAgent    = fs.String("user-agent", "livescores/1.0", "the user agent sent when fetching the feed")
		templateDir  = fs.String("template-dir", "", "read templates from this directory on every request instead of using the bundled ones (develop only)")
		mockFeed     = fs.Bool("mock-feed", false, "serve fixed sample matches instead of fetching the feed (develop only)")
	)

	ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix("LS"),
	)

	// Heroku doesn't support EnvVarPrefixes so we have to overwrite this
	if os.Getenv("PORT") != "" {
		*port = os.Getenv("PORT")
	}

	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	var debug bool
	switch strings.ToLower(*environment) {
	case "develop", "development":
		debug = true
		l = level.NewFilter(l, level.AllowDebug())
	case "prod":
		l = level.NewFilter(l, level.AllowError())
	default:
		l = level.NewFilter(l, level.AllowInfo())
	}
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	if !debug && (*templateDir != "" || *mockFeed) {
		level.Error(l).Log("err", "template-dir and mock-feed are only available in the develop environment")
		return
	}

	var fr feed.Repository = feed.NewRepository(l, *fetchTimeout, *userAgent)
	if *mockFeed {
		level.Info(l).Log("msg", "using mocked feed entries, the live feed won't be fetched")
		fr = feed.NewMockRepository(l)
	}

	tr, err := web.NewRenderer(l, *templateDir)
	if err != nil {
		level.Error(l).Log("msg", "error loading templates", "err", err)
		return
	}

	// Set up HTTP API
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	scoreboardService := scoreboard.NewService(l, fr, tr, *feedURL, debug)

	r.Handle("/static/*", web.StaticHandler())
	r.Mount("/", scoreboard.NewHandler(*scoreboardService))

	level.Info(l).Log("msg", fmt.Sprintf("livescores is running on :%s", *port), "environment", *environment, "feed_url", *feedURL)

	if err := http.ListenAndServe(fmt.Sprintf(":%s", *port), r); err != nil {
		level.Error(l).Log("err", err)
		return
	}
}
