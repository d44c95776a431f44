// Package render implements echo.Renderer over html/template pages embedded
// in the binary. Each page is parsed together with the shared partials
// (files prefixed with "_") and executed through the "base" layout.
package render

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"blog/config"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CSRFContextKey is where the CSRF middleware stores the token in echo.Context.
const CSRFContextKey = "csrf"

const (
	layoutName    = "base"
	partialPrefix = "_"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data passed to every template.
type Page struct {
	Title   string
	Flashes []string
	// Form holds the submitted (or prefilled) form struct.
	Form   any
	Errors map[string]string
	Data   any

	CSRFField string
	CSRFToken string
}

// Flash appends a one-shot message shown above the page content.
func (p *Page) Flash(msg string) *Page {
	p.Flashes = append(p.Flashes, msg)

	return p
}

type Renderer struct {
	pages     map[string]*template.Template
	csrfField string
}

func New(cfg *config.Config) (*Renderer, error) {
	funcs := template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": func(s string) string { return cases.Title(language.English).String(s) },
		"trim":  strings.TrimSpace,
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var partials, pageFiles []string
	for _, f := range files {
		if strings.HasPrefix(path.Base(f), partialPrefix) {
			partials = append(partials, f)
		} else {
			pageFiles = append(pageFiles, f)
		}
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, f := range pageFiles {
		name := strings.TrimSuffix(path.Base(f), ".html")
		patterns := append(append([]string{}, partials...), f)

		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse template %s", name)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages:     pages,
		csrfField: cfg.HTTP.CSRF.TokenField,
	}, nil
}

// Render fills the CSRF fields of a *Page from c before executing the template.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}

	if page, ok := data.(*Page); ok && c != nil {
		page.CSRFField = r.csrfField
		if token, ok := c.Get(CSRFContextKey).(string); ok {
			page.CSRFToken = token
		}
	}

	return errors.WithStack(tmpl.ExecuteTemplate(w, layoutName, data))
}
