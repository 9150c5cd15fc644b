// Package pipeline implements the HTML preparation stages run before a
// document is printed to PDF:
//   - template execution with the request view (names, amounts, rates, date)
//   - CSS injection (heading weight, debug grid styling)
//   - body-end injection of the optional debug grid overlay
//
// PDF generation is handled separately by the root findoc package using
// headless Chrome (go-rod), and image stamping by internal/overlay.
package pipeline
