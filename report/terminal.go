package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Format selects how a command prints its report.
type Format string

const (
	// Terminal styles the markdown for a terminal.
	Terminal Format = "terminal"
	// Markdown prints the markdown source unchanged.
	Markdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Terminal, Markdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want terminal or markdown)", s)
}

// Renderer turns report markdown into output text.
type Renderer struct {
	format Format
	term   *glamour.TermRenderer
}

// NewRenderer builds a renderer. noColor selects glamour's plain "notty"
// style; otherwise the style follows the terminal background.
func NewRenderer(format Format, noColor bool, width int) (*Renderer, error) {
	r := &Renderer{format: format}
	if format == Markdown {
		return r, nil
	}

	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}
	term, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	r.term = term
	return r, nil
}

func (r *Renderer) Render(md string) (string, error) {
	if r.term == nil {
		return md, nil
	}
	out, err := r.term.Render(md)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return out, nil
}
