package scoreboard

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log/level"
)

// NewHandler initializes a new scoreboard handler
func NewHandler(s service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.GetHead)

	r.Get("/", indexHandler(s))

	return r
}

func indexHandler(s service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scores := s.Scores(r.Context())

		// Render into a buffer first, so a failing template doesn't leave us with half a page and a 200
		var buf bytes.Buffer
		if err := s.tr.Render(&buf, "index.html", map[string]interface{}{"scores": scores}); err != nil {
			level.Error(s.l).Log("msg", "error rendering scoreboard", "err", err)
			if s.debug {
				http.Error(w, fmt.Sprintf("error rendering scoreboard: %s", err), http.StatusInternalServerError)
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			level.Debug(s.l).Log("msg", "error writing response", "err", err)
		}
	}
}
