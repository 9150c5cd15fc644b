// Package grid maps logical cells of a fixed page grid to physical page
// coordinates and produces the optional debug overlay drawn over documents.
//
// Cells are addressed 1-based, column first. Fractional indices address
// sub-cell positions. Rows grow downward on the page, while returned Y values
// grow upward from the bottom edge, which is the convention used when images
// are stamped onto PDF pages.
package grid

import (
	"fmt"
	"strings"
)

// Unit conversions.
const (
	// PxToMM converts CSS pixels to millimeters assuming 96 DPI.
	PxToMM = 0.264583

	mmPerInch   = 25.4
	ptPerInch   = 72.0
	labelOffset = 1.0 // mm between a cell edge and its number
	labelInset  = 0.8 // mm from the page edge to the label row/column
)

// Layout describes a page divided into Columns x Rows equal cells.
type Layout struct {
	PageWidthMM  float64
	PageHeightMM float64
	Columns      int
	Rows         int
}

// A4 is the 25x35 grid laid over a portrait A4 page.
var A4 = Layout{PageWidthMM: 210, PageHeightMM: 297, Columns: 25, Rows: 35}

// Point is a position on the page in millimeters, origin at bottom-left.
type Point struct {
	X float64
	Y float64
}

// CellWidth returns the width of one cell in millimeters.
func (g Layout) CellWidth() float64 {
	return g.PageWidthMM / float64(g.Columns)
}

// CellHeight returns the height of one cell in millimeters.
func (g Layout) CellHeight() float64 {
	return g.PageHeightMM / float64(g.Rows)
}

// CellToPoint returns the page position of the cell at (column, row).
// X is the left edge of the column; Y is measured from the bottom of the page
// to the lower edge of the row.
func (g Layout) CellToPoint(column, row float64) Point {
	return Point{
		X: (column - 1) * g.CellWidth(),
		Y: g.PageHeightMM - row*g.CellHeight(),
	}
}

// Validate reports whether the grid can be used for placement.
func (g Layout) Validate() error {
	if g.PageWidthMM <= 0 || g.PageHeightMM <= 0 {
		return fmt.Errorf("grid: page size must be positive, got %.2fx%.2fmm", g.PageWidthMM, g.PageHeightMM)
	}
	if g.Columns < 1 || g.Rows < 1 {
		return fmt.Errorf("grid: need at least one column and row, got %dx%d", g.Columns, g.Rows)
	}
	return nil
}

// PtToMM converts PDF points to millimeters.
func PtToMM(pt float64) float64 {
	return pt * mmPerInch / ptPerInch
}

// MMToInches converts millimeters to inches.
func MMToInches(mm float64) float64 {
	return mm / mmPerInch
}

// Cell describes one bordered cell of the debug overlay, positioned from the
// top-left corner of the page as CSS expects.
type Cell struct {
	Row      int // 1-based
	Column   int // 1-based
	LeftMM   float64
	TopMM    float64
	WidthMM  float64
	HeightMM float64
}

// Axis identifies which page edge a label runs along.
type Axis int

// Label axes.
const (
	AxisTop Axis = iota
	AxisLeft
)

// Label is a cell number printed along the top or left page edge.
type Label struct {
	Axis   Axis
	Index  int // 1-based column or row number
	Text   string
	LeftMM float64
	TopMM  float64
}

// Cells enumerates every cell row by row, Columns*Rows descriptors in total.
func (g Layout) Cells() []Cell {
	if g.Columns < 1 || g.Rows < 1 {
		return nil
	}

	cw, ch := g.CellWidth(), g.CellHeight()
	cells := make([]Cell, 0, g.Columns*g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			cells = append(cells, Cell{
				Row:      r + 1,
				Column:   c + 1,
				LeftMM:   float64(c) * cw,
				TopMM:    float64(r) * ch,
				WidthMM:  cw,
				HeightMM: ch,
			})
		}
	}
	return cells
}

// Labels enumerates the top labels (one per column) followed by the left
// labels (one per row), Columns+Rows descriptors in total.
func (g Layout) Labels() []Label {
	if g.Columns < 1 || g.Rows < 1 {
		return nil
	}

	cw, ch := g.CellWidth(), g.CellHeight()
	labels := make([]Label, 0, g.Columns+g.Rows)
	for j := 0; j < g.Columns; j++ {
		labels = append(labels, Label{
			Axis:   AxisTop,
			Index:  j + 1,
			Text:   fmt.Sprint(j + 1),
			LeftMM: float64(j)*cw + labelOffset,
			TopMM:  labelInset,
		})
	}
	for i := 0; i < g.Rows; i++ {
		labels = append(labels, Label{
			Axis:   AxisLeft,
			Index:  i + 1,
			Text:   fmt.Sprint(i + 1),
			LeftMM: labelInset,
			TopMM:  float64(i)*ch + labelOffset,
		})
	}
	return labels
}

// OverlayCSS styles the markup produced by OverlayHTML.
func (g Layout) OverlayCSS() string {
	return fmt.Sprintf(`.grid-overlay { position: fixed; top: 0; left: 0; width: %.3fmm; height: %.3fmm; pointer-events: none; z-index: 9999; }
.grid-cell { position: absolute; border: 0.2mm solid rgba(0,128,255,0.25); box-sizing: border-box; }
.grid-num { position: absolute; font-size: 6pt; line-height: 1; color: rgba(0,0,255,0.6); font-family: Arial, sans-serif; }
`, g.PageWidthMM, g.PageHeightMM)
}

// OverlayHTML renders the debug grid as absolutely positioned elements.
// The output is deterministic for a given Layout.
func (g Layout) OverlayHTML() string {
	cells := g.Cells()
	labels := g.Labels()

	var b strings.Builder
	b.Grow(len(cells)*120 + len(labels)*90)

	b.WriteString(`<div class="grid-overlay">`)
	for _, c := range cells {
		fmt.Fprintf(&b, `<div class="grid-cell" style="left:%.3fmm; top:%.3fmm; width:%.3fmm; height:%.3fmm"></div>`,
			c.LeftMM, c.TopMM, c.WidthMM, c.HeightMM)
	}
	for _, l := range labels {
		fmt.Fprintf(&b, `<span class="grid-num" style="left:%.3fmm; top:%.3fmm">%s</span>`,
			l.LeftMM, l.TopMM, l.Text)
	}
	b.WriteString(`</div>`)
	return b.String()
}
