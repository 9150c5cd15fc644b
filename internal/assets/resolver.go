package assets

import (
	"errors"
	"fmt"
)

// Origin tells which tier served an asset.
type Origin string

// Asset origins, in lookup order.
const (
	OriginCustom   Origin = "custom"
	OriginEmbedded Origin = "embedded"
)

// Template is a resolved document template.
type Template struct {
	Name   string // file name that matched, without .html
	Source string
	Origin Origin
}

type tier struct {
	origin Origin
	loader AssetLoader
}

// AssetResolver looks assets up in the custom directory first and the
// embedded defaults second. Template aliases are tried inside each tier
// before moving on, so a custom file under either spelling beats the
// embedded copy.
type AssetResolver struct {
	tiers   []tier
	aliases map[string]string
}

// ResolverOption configures an AssetResolver.
type ResolverOption func(*AssetResolver)

// WithTemplateAliases registers alternate template names. aliases maps a
// requested name to the name tried when the requested one is missing.
func WithTemplateAliases(aliases map[string]string) ResolverOption {
	return func(r *AssetResolver) {
		r.aliases = aliases
	}
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string, opts ...ResolverOption) (*AssetResolver, error) {
	r := &AssetResolver{}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.tiers = append(r.tiers, tier{origin: OriginCustom, loader: fsLoader})
	}
	r.tiers = append(r.tiers, tier{origin: OriginEmbedded, loader: NewEmbeddedLoader()})

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ResolveTemplate finds the template for name. Within each tier the literal
// name is tried before its alias. Validation and read errors stop the
// lookup; only not-found moves on.
func (r *AssetResolver) ResolveTemplate(name string) (*Template, error) {
	candidates := []string{name}
	if alt, ok := r.aliases[name]; ok && alt != name {
		candidates = append(candidates, alt)
	}

	for _, t := range r.tiers {
		for _, candidate := range candidates {
			source, err := t.loader.LoadTemplate(candidate)
			if err == nil {
				return &Template{Name: candidate, Source: source, Origin: t.origin}, nil
			}
			if !errors.Is(err, ErrTemplateNotFound) {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// LoadTemplate returns the source resolved by ResolveTemplate.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	t, err := r.ResolveTemplate(name)
	if err != nil {
		return "", err
	}
	return t.Source, nil
}

// LoadImage reads an image from the first tier that has it.
func (r *AssetResolver) LoadImage(name string) ([]byte, error) {
	var lastErr error
	for _, t := range r.tiers {
		data, err := t.loader.LoadImage(name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrImageNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
