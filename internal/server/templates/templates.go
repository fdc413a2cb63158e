// Package templates holds the server-rendered pages.
package templates

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/mamadbah2/ecolog/internal/emissions"
	"github.com/mamadbah2/ecolog/internal/service/logform"
)

//go:embed html/*.html
var files embed.FS

// Load parses every page with the shared helpers.
func Load() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(files, "html/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Funcs are the helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"capitalize": logform.Capitalize,
		// signed output is built from a float only, so it is safe to mark as
		// HTML and keep the literal "+" unescaped.
		"signed": func(value float64, decimals int) template.HTML {
			return template.HTML(emissions.Signed(value, decimals))
		},
	}
}
