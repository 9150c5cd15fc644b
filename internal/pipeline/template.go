package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrTemplateRender reports a template that failed to parse or execute.
var ErrTemplateRender = errors.New("document template rendering failed")

// DocumentView is the data exposed to document templates. Every value is
// preformatted for display; templates never do arithmetic.
type DocumentView struct {
	Name     string
	Amount   string // "15 000.00", currency sign left to the template
	Duration int    // months
	TAN      string // nominal annual rate, "7.86"
	TAEG     string // effective annual rate, "8.30"
	Payment  string // monthly installment, "469.08"
	Date     string // issue date in the configured format
}

// TemplateRenderer executes a document template against a view.
type TemplateRenderer interface {
	Render(ctx context.Context, name, source string, view *DocumentView) (string, error)
}

var _ TemplateRenderer = (*HTMLTemplateRenderer)(nil)

// HTMLTemplateRenderer renders templates with html/template, so every value
// from the request is escaped in its HTML context.
type HTMLTemplateRenderer struct{}

// Render parses source and executes it with view.
// A template without any action is returned unchanged.
func (r *HTMLTemplateRenderer) Render(ctx context.Context, name, source string, view *DocumentView) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if view == nil {
		view = &DocumentView{}
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrTemplateRender, name, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(source) + 256)
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: executing %s: %v", ErrTemplateRender, name, err)
	}
	return buf.String(), nil
}
