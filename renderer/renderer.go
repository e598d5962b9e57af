package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/watchlist"
)

//go:embed templates/*.md
var templates embed.FS

// RenderCards renders a snapshot as one section per quote.
func RenderCards(s *watchlist.Snapshot, opts Options) string {
	partials := map[string]string{
		"quotes_title": "quotes_title.md",
		"quotes_total": "quotes_total.md",
	}
	return renderTemplate("cards", "quotes_cards.md", partials, NewQuotes(s, opts))
}

// RenderTable renders a snapshot as a single table, one row per quote.
func RenderTable(s *watchlist.Snapshot, opts Options) string {
	partials := map[string]string{
		"quotes_title": "quotes_title.md",
		"quotes_total": "quotes_total.md",
	}
	return renderTemplate("table", "quotes_table.md", partials, NewQuotes(s, opts))
}

// Render renders a snapshot in the view v.
func Render(s *watchlist.Snapshot, v watchlist.View, opts Options) string {
	if v == watchlist.ViewTable {
		return RenderTable(s, opts)
	}
	return RenderCards(s, opts)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
