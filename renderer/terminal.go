package renderer

import (
	"github.com/charmbracelet/glamour"
)

// Terminal styles markdown for a terminal of the given width. Style is a
// glamour standard style ("dark", "light", "notty", ...), "auto" detects it.
func Terminal(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
