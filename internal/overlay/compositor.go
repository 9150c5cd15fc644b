package overlay

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"github.com/alnah/go-findoc/internal/fileutil"
	"github.com/alnah/go-findoc/internal/grid"
)

// stampDescription lays a same-size overlay page exactly over its base page.
const stampDescription = "position:bl, offset:0 0, scalefactor:1 abs, rotation:0, opacity:1"

var disableConfigDir = sync.OnceFunc(api.DisableConfigDir)

// Compositor applies placements to base PDFs. It holds no per-document
// state and is safe for concurrent use when its ImageSource is.
type Compositor struct {
	images ImageSource
	grid   grid.Layout
	logger *zap.Logger
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithGrid sets the grid used to resolve placement cells. Default grid.A4.
func WithGrid(g grid.Layout) Option {
	return func(c *Compositor) {
		c.grid = g
	}
}

// WithLogger sets the logger receiving placement warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Compositor reading images from src.
func New(src ImageSource, opts ...Option) *Compositor {
	disableConfigDir()

	c := &Compositor{
		images: src,
		grid:   grid.A4,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply draws placements onto base in order and returns the merged PDF.
// Page count and page sizes of base are preserved. When nothing could be
// drawn the returned PDF is base itself.
func (c *Compositor) Apply(ctx context.Context, base []byte, placements []Placement) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := PageSizes(base)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrReadBase)
	}

	res := &Result{PDF: base}
	if len(placements) == 0 {
		return res, nil
	}

	surfaces := newSurfaces(pages)
	defer releaseAll(surfaces)

	cache := newImageCache(c.images)
	for _, p := range placements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if p.Page < 0 || p.Page >= len(surfaces) {
			c.fail(res, p, fmt.Errorf("%w: page %d, document has %d", ErrPageOutOfRange, p.Page, len(surfaces)))
			continue
		}

		img, err := cache.get(p.Image)
		if err != nil {
			c.fail(res, p, fmt.Errorf("%w: %w", ErrImagePlacement, err))
			continue
		}

		target := surfaces[p.Page]
		if err := target.draw(c.layout(target, img, p)); err != nil {
			c.fail(res, p, fmt.Errorf("%w: %w", ErrImagePlacement, err))
			continue
		}
		res.Applied++
	}

	if res.Applied == 0 {
		return res, nil
	}

	merged, err := c.merge(ctx, base, surfaces, res)
	if err != nil {
		return nil, err
	}
	res.PDF = merged
	return res, nil
}

// layout converts a placement to a draw operation on s. The grid point is
// the lower-left corner of the image; fpdf positions by the upper-left.
func (c *Compositor) layout(s *surface, img *sourceImage, p Placement) drawOp {
	w, h := img.sizeMM(p.Scale)
	pt := c.grid.CellToPoint(p.Column, p.Row)
	return drawOp{
		placement: p,
		img:       img,
		x:         pt.X,
		top:       s.heightMM - pt.Y - h,
		w:         w,
		h:         h,
	}
}

// merge stamps every surface with content onto its base page. A page that
// cannot be stamped is left as it was and its placements become failures.
func (c *Compositor) merge(ctx context.Context, base []byte, surfaces []*surface, res *Result) ([]byte, error) {
	current := base
	for i, s := range surfaces {
		if !s.hasContent() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stamped, err := stampPage(current, s, i)
		if err != nil {
			for _, op := range s.ops {
				res.Applied--
				c.fail(res, op.placement, fmt.Errorf("%w: merging page %d: %w", ErrImagePlacement, i, err))
			}
			continue
		}
		current = stamped
	}
	return current, nil
}

func stampPage(current []byte, s *surface, index int) ([]byte, error) {
	layer, err := s.finalize()
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(layer, "pdf")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	wm, err := api.PDFWatermark(path, stampDescription, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("preparing overlay: %w", err)
	}

	var out bytes.Buffer
	pages := []string{strconv.Itoa(index + 1)}
	if err := api.AddWatermarks(bytes.NewReader(current), &out, pages, wm, newConfiguration()); err != nil {
		return nil, fmt.Errorf("stamping overlay: %w", err)
	}
	return out.Bytes(), nil
}

func (c *Compositor) fail(res *Result, p Placement, err error) {
	c.logger.Warn("overlay placement skipped",
		zap.String("image", p.Image),
		zap.Int("page", p.Page),
		zap.Float64("column", p.Column),
		zap.Float64("row", p.Row),
		zap.Error(err),
	)
	res.Failures = append(res.Failures, Failure{Placement: p, Err: err})
}

// newConfiguration returns a fresh pdfcpu configuration; pdfcpu records the
// running command on it, so it is not shared between calls.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages in pdf.
func PageCount(pdf []byte) (int, error) {
	disableConfigDir()
	n, err := api.PageCount(bytes.NewReader(pdf), newConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadBase, err)
	}
	return n, nil
}

// PageSizes returns the width and height of every page of pdf in millimeters.
func PageSizes(pdf []byte) ([][2]float64, error) {
	disableConfigDir()
	dims, err := api.PageDims(bytes.NewReader(pdf), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadBase, err)
	}
	out := make([][2]float64, len(dims))
	for i, d := range dims {
		out[i] = [2]float64{grid.PtToMM(d.Width), grid.PtToMM(d.Height)}
	}
	return out, nil
}
