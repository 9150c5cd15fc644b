package pipeline

import (
	"context"
	"strings"
)

// HeadingCSS forces bold weight on every heading level and everything nested
// inside headings, overriding weights set by the template itself.
const HeadingCSS = `h1, h2, h3, h4, h5, h6,
h1 *, h2 *, h3 *, h4 *, h5 *, h6 * { font-weight: 700 !important; }
`

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// BodyInjector defines the contract for appending markup at the end of the
// document body.
type BodyInjector interface {
	InjectBeforeBodyEnd(ctx context.Context, htmlContent, fragment string) string
}

// Compile-time interface checks.
var (
	_ CSSInjector  = (*CSSInjection)(nil)
	_ BodyInjector = (*BodyInjection)(nil)
)

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if pos, ok := afterBodyOpen(htmlContent, lowerHTML); ok {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// afterBodyOpen returns the offset just past the opening <body ...> tag.
func afterBodyOpen(htmlContent, lowerHTML string) (int, bool) {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return 0, false
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return 0, false
	}
	return idx + closeIdx + 1, true
}

// BodyInjection appends fragments just before the closing body tag.
type BodyInjection struct{}

// InjectBeforeBodyEnd inserts fragment before the last </body>, or appends it
// when the document has no closing body tag.
func (b *BodyInjection) InjectBeforeBodyEnd(ctx context.Context, htmlContent, fragment string) string {
	if fragment == "" || ctx.Err() != nil {
		return htmlContent
	}

	lowerHTML := strings.ToLower(htmlContent)
	if idx := strings.LastIndex(lowerHTML, "</body>"); idx != -1 {
		return htmlContent[:idx] + fragment + htmlContent[idx:]
	}
	return htmlContent + fragment
}
