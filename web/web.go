package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const templatePattern = "*.html"

var funcs = template.FuncMap{
	"published": published,
}

// published prefers the parsed timestamp and falls back to whatever the feed sent us
func published(t *time.Time, raw string) string {
	if t == nil || t.IsZero() {
		return raw
	}
	return t.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
}

type renderer struct {
	l   log.Logger
	t   *template.Template
	dir string
}

// NewRenderer initializes a new template renderer. If dir is empty the templates bundled with the binary are parsed
// once, otherwise they are read from dir on every call to Render so changes show up without a restart.
func NewRenderer(l log.Logger, dir string) (*renderer, error) {
	var src fs.FS
	if dir == "" {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, err
		}
		src = sub
	} else {
		src = os.DirFS(dir)
	}

	t, err := parse(src)
	if err != nil {
		return nil, err
	}
	r := &renderer{l: l}
	if dir == "" {
		r.t = t
	} else {
		r.dir = dir
		level.Info(l).Log("msg", "reloading templates on every request", "template_dir", dir)
	}
	return r, nil
}

func parse(src fs.FS) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(src, templatePattern)
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	return t, nil
}

// Render executes the named template with data into w
func (r *renderer) Render(w io.Writer, name string, data interface{}) error {
	t := r.t
	if r.dir != "" {
		var err error
		if t, err = parse(os.DirFS(r.dir)); err != nil {
			return err
		}
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return errors.Wrapf(err, "executing template %s", name)
	}
	return nil
}

// StaticHandler serves the bundled stylesheet and scripts, it expects to be mounted at /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
