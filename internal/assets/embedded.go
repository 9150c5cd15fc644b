package assets

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html
var templates embed.FS

// EmbeddedLoader loads templates from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads an HTML template from embedded assets by name.
// The name should not include the .html extension.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// LoadImage always fails: no images are embedded.
func (e *EmbeddedLoader) LoadImage(name string) ([]byte, error) {
	if err := ValidateImageName(name); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q (no embedded images)", ErrImageNotFound, name)
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
