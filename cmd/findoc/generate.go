package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	findoc "github.com/alnah/go-findoc"
	"github.com/alnah/go-findoc/internal/assets"
	"github.com/alnah/go-findoc/internal/config"
	"github.com/alnah/go-findoc/internal/fileutil"
	"github.com/alnah/go-findoc/internal/hints"
	"github.com/alnah/go-findoc/internal/overlay"
)

// ErrWritePDF reports that the generated document could not be saved.
var ErrWritePDF = errors.New("failed to write PDF file")

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultVariant is generated when no variant is given.
const defaultVariant = findoc.Contract

// runGenerate writes one sample document. The single optional argument is
// the variant; unknown names are passed to the generator as custom template
// names, so templates added to the asset directory can be requested by name.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one variant, got %q", ErrUsage, positional)
	}

	docType, custom := defaultVariant, false
	if len(positional) == 1 {
		if docType, custom, err = parseVariant(positional[0]); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	req, err := buildRequest(flags.request)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()
	if custom {
		logger.Debug("custom template variant", zap.String("variant", docType.String()))
	}

	opts, err := buildOptions(flags.render, cfg, logger, env)
	if err != nil {
		return err
	}

	gen, err := env.NewGenerator(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	start := time.Now()
	res, err := gen.Generate(ctx, docType, req)
	if err != nil {
		return fmt.Errorf("generating %s: %w", docType, err)
	}

	outPath := resolveOutputPath(flags.output, cfg, docType)
	if err := writePDF(outPath, res.PDF); err != nil {
		return err
	}

	logger.Debug("document written",
		zap.String("path", outPath),
		zap.Int("pages", res.PageCount),
		zap.Duration("elapsed", time.Since(start)),
	)

	printResult(env, flags.common.quiet, outPath, res, resolveAssetPath(flags.render.assetPath, cfg))
	return nil
}

// parseVariant maps a variant argument to a document type. Names outside the
// built-in set are kept as custom template names and custom is true.
func parseVariant(arg string) (docType findoc.DocumentType, custom bool, err error) {
	docType, err = findoc.ParseDocumentType(arg)
	if err == nil {
		return docType, false, nil
	}
	name := strings.ToLower(strings.TrimSpace(arg))
	if name == "" {
		return "", false, fmt.Errorf("%w: empty variant", ErrUsage)
	}
	return findoc.DocumentType(name), true, nil
}

// buildRequest starts from the sample record and applies the overrides.
func buildRequest(f requestFlags) (findoc.DocumentRequest, error) {
	req := findoc.SampleRequest()

	if f.name != "" {
		req.Name = f.name
	}
	if f.duration > 0 {
		req.DurationMonths = f.duration
	}

	decimals := []struct {
		flag  string
		value string
		dst   *decimal.Decimal
	}{
		{"amount", f.amount, &req.Amount},
		{"tan", f.tan, &req.NominalRate},
		{"taeg", f.taeg, &req.EffectiveRate},
	}
	for _, d := range decimals {
		if d.value == "" {
			continue
		}
		v, err := parseDecimal(d.flag, d.value)
		if err != nil {
			return req, err
		}
		*d.dst = v
	}

	if f.payment != "" {
		v, err := parseDecimal("payment", f.payment)
		if err != nil {
			return req, err
		}
		req.Payment = &v
	}
	return req, nil
}

// parseDecimal accepts "." or "," as the decimal separator.
func parseDecimal(flagName, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s %q is not a number", ErrUsage, flagName, value)
	}
	return d, nil
}

// outputName returns test_<variant>.pdf. Both contract spellings write
// test_contrato.pdf.
func outputName(docType findoc.DocumentType) string {
	if docType.IsContract() {
		docType = findoc.Contract
	}
	return "test_" + docType.String() + ".pdf"
}

// resolveOutputPath applies --output, then output.defaultDir, then the
// working directory. An --output ending in .pdf is used as the file path.
func resolveOutputPath(flagOutput string, cfg *config.Config, docType findoc.DocumentType) string {
	if strings.EqualFold(filepath.Ext(flagOutput), ".pdf") {
		return flagOutput
	}
	dir := flagOutput
	if dir == "" {
		dir = cfg.Output.DefaultDir
	}
	return filepath.Join(dir, outputName(docType))
}

// writePDF creates the parent directory and writes data atomically.
func writePDF(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: creating %s: %w", ErrWritePDF, dir, err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWritePDF, err)
	}
	return nil
}

// printResult reports the written file and any images left out.
func printResult(env *Environment, quiet bool, path string, res *findoc.Result, assetPath string) {
	if quiet {
		return
	}

	missing := 0
	for _, f := range res.Failures {
		if errors.Is(f, overlay.ErrImagePlacement) {
			missing++
		}
	}

	if len(res.Failures) > 0 {
		hint := ""
		if missing > 0 {
			if abs, err := filepath.Abs(assetPath); err == nil {
				assetPath = abs
			}
			hint = hints.ForMissingImages(assetPath)
		}
		fmt.Fprintf(env.Stderr, "warning: %d image(s) not placed%s\n", len(res.Failures), hint)
	}

	fmt.Fprintf(env.Stdout, "Created %s (%d pages)\n", path, res.PageCount)
}

// templateNames lists the bundled template names for hints.
func templateNames() []string {
	return assets.TemplateNames()
}
