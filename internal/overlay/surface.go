package overlay

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
)

// drawOp is one image drawn on a surface, in fpdf's top-left coordinates.
type drawOp struct {
	placement Placement
	img       *sourceImage
	x, top    float64
	w, h      float64
}

// surface is the transparent drawing layer for one base page.
// The underlying document is created on first draw and dropped by release.
type surface struct {
	widthMM  float64
	heightMM float64

	doc        *fpdf.Fpdf
	registered map[string]bool
	ops        []drawOp
}

func newSurfaces(dims [][2]float64) []*surface {
	out := make([]*surface, len(dims))
	for i, d := range dims {
		out[i] = &surface{widthMM: d[0], heightMM: d[1]}
	}
	return out
}

func releaseAll(surfaces []*surface) {
	for _, s := range surfaces {
		s.release()
	}
}

func (s *surface) hasContent() bool {
	return len(s.ops) > 0
}

func (s *surface) open() {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: s.widthMM, Ht: s.heightMM},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(true)
	doc.AddPage()

	s.doc = doc
	s.registered = make(map[string]bool)
}

// draw renders op. fpdf errors are sticky, so a failed draw rebuilds the
// surface from the operations that already succeeded.
func (s *surface) draw(op drawOp) error {
	if s.doc == nil {
		s.open()
	}

	s.render(op)
	if err := s.doc.Error(); err != nil {
		s.rebuild()
		return fmt.Errorf("drawing %s: %w", op.img.name, err)
	}

	s.ops = append(s.ops, op)
	return nil
}

func (s *surface) render(op drawOp) {
	opts := fpdf.ImageOptions{ImageType: op.img.kind, AllowNegativePosition: true}
	if !s.registered[op.img.name] {
		s.doc.RegisterImageOptionsReader(op.img.name, opts, bytes.NewReader(op.img.data))
		s.registered[op.img.name] = true
	}
	s.doc.ImageOptions(op.img.name, op.x, op.top, op.w, op.h, false, opts, 0, "")
}

func (s *surface) rebuild() {
	s.open()
	for _, op := range s.ops {
		s.render(op)
	}
}

// finalize returns the surface as a one-page PDF.
func (s *surface) finalize() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing overlay page: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *surface) release() {
	s.doc = nil
	s.registered = nil
	s.ops = nil
}
