// Package overlay stamps raster images onto the pages of an existing PDF.
//
// Each placement addresses a page by 0-based index and a position by grid
// cell. Images are drawn on transparent per-page surfaces which are then
// merged on top of the matching base pages, so base content stays visible
// wherever the image is transparent.
//
// Problems with individual placements never abort a document: they are
// logged and returned in Result.Failures. Only an unreadable base PDF is
// fatal.
package overlay

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for overlay operations.
var (
	// ErrReadBase reports that the base PDF could not be parsed. Fatal.
	ErrReadBase = errors.New("reading base PDF failed")

	// ErrImagePlacement reports that one image could not be loaded, decoded,
	// drawn or merged. The document is still produced without it.
	ErrImagePlacement = errors.New("image placement failed")

	// ErrPageOutOfRange reports a placement targeting a page the document
	// does not have. The placement is skipped.
	ErrPageOutOfRange = errors.New("placement page out of range")
)

// Placement positions one image on one page.
type Placement struct {
	Image  string  `yaml:"image" json:"image"`   // asset name, e.g. "logo.png"
	Column float64 `yaml:"column" json:"column"` // 1-based, fractional allowed
	Row    float64 `yaml:"row" json:"row"`       // 1-based, fractional allowed
	Scale  float64 `yaml:"scale" json:"scale"`   // multiplier on the natural size
	Page   int     `yaml:"page" json:"page"`     // 0-based
}

// String identifies the placement in logs and error messages.
func (p Placement) String() string {
	return fmt.Sprintf("%s@page%d(%g,%g)x%g", p.Image, p.Page, p.Column, p.Row, p.Scale)
}

// Validate checks the fields that cannot be resolved at draw time.
// Page bounds are checked against the actual document by Apply.
func (p Placement) Validate() error {
	if p.Image == "" {
		return errors.New("placement image is required")
	}
	if p.Scale <= 0 {
		return fmt.Errorf("placement %s: scale must be positive", p.Image)
	}
	if p.Column < 1 || p.Row < 1 {
		return fmt.Errorf("placement %s: column and row are 1-based", p.Image)
	}
	if p.Page < 0 {
		return fmt.Errorf("placement %s: page index cannot be negative", p.Image)
	}
	return nil
}

// Table maps a document type name to its ordered placements.
type Table map[string][]Placement

// For returns a copy of the placements registered for name, or nil.
func (t Table) For(name string) []Placement {
	return slices.Clone(t[name])
}

// Validate checks every placement in the table.
func (t Table) Validate() error {
	for name, placements := range t {
		for _, p := range placements {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("placements for %q: %w", name, err)
			}
		}
	}
	return nil
}

// Merge returns a copy of t with the entries of other replacing those of t.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for k, v := range t {
		out[k] = slices.Clone(v)
	}
	for k, v := range other {
		out[k] = slices.Clone(v)
	}
	return out
}

// DefaultTable returns the placements used by the bundled templates: the
// company logo on the first contract page and the signature on the third.
// Guarantee letters and card agreements carry no images.
func DefaultTable() Table {
	contract := []Placement{
		{Image: "logo.png", Column: 14, Row: 8, Scale: 0.3375, Page: 0},
		{Image: "sing_1.png", Column: 14, Row: 15.5, Scale: 0.175, Page: 2},
	}
	return Table{
		"contrato":  contract,
		"contratto": slices.Clone(contract),
	}
}

// Failure records one placement that was not applied.
type Failure struct {
	Placement Placement
	Err       error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Placement, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of Apply.
type Result struct {
	PDF      []byte
	Applied  int
	Failures []Failure
}
