package api

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/lox/inmetdash/internal/dashboard"
)

//go:embed templates
var templateFS embed.FS

// parseTemplates loads the page and partial templates from fsys. Tests
// pass a fstest.MapFS to exercise failure paths.
func parseTemplates(fsys fs.FS) (*template.Template, error) {
	funcs := template.FuncMap{
		"upper": strings.ToUpper,
		"noData": func(k dashboard.KPI) bool {
			return !k.Valid
		},
		"add": func(a, b int) int { return a + b },
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(fsys, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{"index.html", "dashboard.html", "table.html"} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("parse templates: missing %s", name)
		}
	}
	return tmpl, nil
}
