package findoc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-findoc/internal/assets"
	"github.com/alnah/go-findoc/internal/dateutil"
	"github.com/alnah/go-findoc/internal/finance"
	"github.com/alnah/go-findoc/internal/grid"
	"github.com/alnah/go-findoc/internal/overlay"
	"github.com/alnah/go-findoc/internal/pipeline"
)

// templateAliases pairs the two spellings of the contract template.
var templateAliases = map[string]string{
	string(Contract):      string(ContractAlias),
	string(ContractAlias): string(Contract),
}

// Generator turns document requests into PDFs.
// Create with NewGenerator, call Generate, and Close when done.
// A Generator owns one browser and is not safe for concurrent use; use
// GeneratorPool to serve parallel callers.
type Generator struct {
	cfg          generatorConfig
	logger       *zap.Logger
	loader       *assets.AssetResolver
	templates    pipeline.TemplateRenderer
	cssInjector  pipeline.CSSInjector
	bodyInjector pipeline.BodyInjector
	pathRewriter pipeline.PathRewriter
	compositor   *overlay.Compositor
	pdf          pdfConverter
	dateLayout   string
}

// NewGenerator creates a Generator. The browser starts on the first Generate.
// Returns an error if the asset path, date format or placements are invalid.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout:        defaultTimeout,
			placements:     overlay.DefaultTable(),
			footerText:     DefaultFooterText,
			marginTopMM:    DefaultMarginMM,
			marginBottomMM: DefaultMarginMM,
			now:            time.Now,
		},
		logger:       zap.NewNop(),
		templates:    &pipeline.HTMLTemplateRenderer{},
		cssInjector:  &pipeline.CSSInjection{},
		bodyInjector: &pipeline.BodyInjection{},
		pathRewriter: &pipeline.AssetPathRewriter{},
	}

	for _, opt := range opts {
		opt(g)
	}

	resolver, err := assets.NewAssetResolver(g.cfg.assetPath, assets.WithTemplateAliases(templateAliases))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	g.loader = resolver

	if g.dateLayout, err = dateutil.Layout(g.cfg.dateFormat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}

	if err := g.cfg.placements.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlacements, err)
	}

	g.compositor = overlay.New(g.loader, overlay.WithGrid(grid.A4), overlay.WithLogger(g.logger))

	// Create PDF converter if not injected (e.g., by tests)
	if g.pdf == nil {
		g.pdf = newRodConverter(g.cfg.timeout)
	}

	return g, nil
}

// Generate renders the template of docType with req, prints it to PDF and
// stamps the placements registered for docType.
//
// Missing templates (ErrTemplateNotFound), invalid requests and rendering
// errors (ErrRendering) return no PDF. Images that cannot be placed are
// listed in Result.Failures and the document is returned without them.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, docType DocumentType, req DocumentRequest) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	if err := req.Validate(docType); err != nil {
		return nil, err
	}

	tmpl, err := loadTemplate(g.loader, string(docType))
	if err != nil {
		return nil, err
	}

	htmlContent, err := g.templates.Render(ctx, tmpl.Name, tmpl.Source, g.view(req))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrRendering, err)
	}

	htmlContent = g.decorate(ctx, htmlContent)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The page is printed from a temp file; local references must point at
	// the asset directory.
	if htmlContent, err = g.pathRewriter.RewriteRelativePaths(ctx, htmlContent, g.cfg.assetPath); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrRendering, err)
	}

	base, err := g.pdf.ToPDF(ctx, htmlContent, &pdfOptions{
		FooterText:     g.cfg.footerText,
		MarginTopMM:    g.cfg.marginTopMM,
		MarginBottomMM: g.cfg.marginBottomMM,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res := &Result{PDF: base, HTML: []byte(htmlContent)}

	if placements := g.cfg.placements.For(string(docType)); len(placements) > 0 {
		stamped, err := g.compositor.Apply(ctx, base, placements)
		if err != nil {
			return nil, fmt.Errorf("compositing images: %w", err)
		}
		res.PDF = stamped.PDF
		res.Failures = stamped.Failures
	}

	if res.PageCount, err = overlay.PageCount(res.PDF); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRendering, err)
	}

	g.logger.Debug("document generated",
		zap.String("type", docType.String()),
		zap.String("template", tmpl.Name),
		zap.String("origin", string(tmpl.Origin)),
		zap.Int("pages", res.PageCount),
		zap.Int("failures", len(res.Failures)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

// GenerateContract generates the loan contract.
func (g *Generator) GenerateContract(ctx context.Context, req DocumentRequest) (*Result, error) {
	return g.Generate(ctx, Contract, req)
}

// GenerateGuarantee generates the guarantee letter. Only req.Name is printed.
func (g *Generator) GenerateGuarantee(ctx context.Context, req DocumentRequest) (*Result, error) {
	return g.Generate(ctx, Guarantee, req)
}

// GenerateCard generates the credit card agreement.
func (g *Generator) GenerateCard(ctx context.Context, req DocumentRequest) (*Result, error) {
	return g.Generate(ctx, Card, req)
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.pdf != nil {
		return g.pdf.Close()
	}
	return nil
}

// view formats req for the templates. A nil payment is computed from the
// terms when there are any.
func (g *Generator) view(req DocumentRequest) *pipeline.DocumentView {
	issued := req.IssueDate
	if issued.IsZero() {
		issued = g.cfg.now()
	}

	v := &pipeline.DocumentView{
		Name:     req.Name,
		Amount:   finance.FormatAmount(req.Amount),
		Duration: req.DurationMonths,
		TAN:      finance.FormatRate(req.NominalRate),
		TAEG:     finance.FormatRate(req.EffectiveRate),
		Date:     issued.Format(g.dateLayout),
	}

	switch {
	case req.Payment != nil:
		v.Payment = finance.FormatAmount(*req.Payment)
	case req.DurationMonths > 0:
		v.Payment = finance.FormatAmount(finance.MonthlyPayment(req.Amount, req.DurationMonths, req.NominalRate))
	}
	return v
}

// decorate adds the heading weight rules and, when enabled, the debug grid.
func (g *Generator) decorate(ctx context.Context, htmlContent string) string {
	css := pipeline.HeadingCSS
	if g.cfg.grid {
		css += grid.A4.OverlayCSS()
	}
	htmlContent = g.cssInjector.InjectCSS(ctx, htmlContent, css)
	if g.cfg.grid {
		htmlContent = g.bodyInjector.InjectBeforeBodyEnd(ctx, htmlContent, grid.A4.OverlayHTML())
	}
	return htmlContent
}

// templateResolver finds a template by name, trying aliases itself.
type templateResolver interface {
	ResolveTemplate(name string) (*assets.Template, error)
}

// loadTemplate resolves name through r. A missing or unusable name is
// reported as ErrTemplateNotFound; other failures keep their cause.
func loadTemplate(r templateResolver, name string) (*assets.Template, error) {
	tmpl, err := r.ResolveTemplate(name)
	if err == nil {
		return tmpl, nil
	}
	if isMissingTemplate(err) {
		return nil, fmt.Errorf("%w: %q: %w", ErrTemplateNotFound, name, err)
	}
	return nil, fmt.Errorf("loading template %q: %w", name, err)
}

func isMissingTemplate(err error) bool {
	return errors.Is(err, assets.ErrTemplateNotFound) || errors.Is(err, assets.ErrInvalidAssetName)
}
