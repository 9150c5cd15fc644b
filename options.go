package findoc

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-findoc/internal/overlay"
)

// Defaults applied by NewGenerator.
const (
	defaultTimeout = 30 * time.Second

	// DefaultFooterText is printed centered at the bottom of every page.
	DefaultFooterText = "Documento riservato – A & G MONEY S.R.L. UNIPERSONALE"

	// DefaultMarginMM is the top and bottom page margin. Left and right
	// margins are always zero so templates control their own gutters.
	DefaultMarginMM = 20.0
)

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout        time.Duration
	assetPath      string
	grid           bool
	placements     overlay.Table
	footerText     string
	marginTopMM    float64
	marginBottomMM float64
	dateFormat     string
	now            func() time.Time
}

// WithTimeout sets the browser page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("findoc: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithAssetPath reads templates and images from dir. Templates missing from
// dir fall back to the embedded ones; images are never embedded.
func WithAssetPath(dir string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = dir
	}
}

// WithLogger sets the logger used for placement warnings and debug timing.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l == nil {
			l = zap.NewNop()
		}
		g.logger = l
	}
}

// WithGrid draws the numbered layout grid over every page, which helps when
// tuning placements.
func WithGrid(enabled bool) Option {
	return func(g *Generator) {
		g.cfg.grid = enabled
	}
}

// WithPlacements replaces placement entries of the default table. A type
// mapped to an empty list gets no images.
func WithPlacements(t overlay.Table) Option {
	return func(g *Generator) {
		g.cfg.placements = g.cfg.placements.Merge(t)
	}
}

// WithFooterText replaces the footer text. An empty string keeps the default.
func WithFooterText(text string) Option {
	return func(g *Generator) {
		if text != "" {
			g.cfg.footerText = text
		}
	}
}

// WithMargins sets the top and bottom page margins in millimeters.
// Panics on negative values.
func WithMargins(topMM, bottomMM float64) Option {
	if topMM < 0 || bottomMM < 0 {
		panic("findoc: WithMargins values must not be negative")
	}
	return func(g *Generator) {
		g.cfg.marginTopMM = topMM
		g.cfg.marginBottomMM = bottomMM
	}
}

// WithDateFormat sets the issue date format: a preset (iso, european, us,
// long) or tokens such as "DD/MM/YYYY". Invalid formats make NewGenerator
// fail.
func WithDateFormat(format string) Option {
	return func(g *Generator) {
		g.cfg.dateFormat = format
	}
}

// WithClock sets the source of the issue date for requests without one.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.cfg.now = now
		}
	}
}

// withConverter replaces the PDF backend (tests).
func withConverter(c pdfConverter) Option {
	return func(g *Generator) {
		g.pdf = c
	}
}
