//go:build integration

package findoc

// Notes:
// - Requires Chrome/Chromium (downloaded by rod when ROD_BROWSER_BIN is unset)
// - Page counts come from the real print layout, so these tests catch
//   templates whose sections overflow onto an extra page
// - Image stamping uses generated PNGs in t.TempDir()

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alnah/go-findoc/internal/overlay"
)

func TestIntegration_GuaranteeSinglePage(t *testing.T) {
	t.Parallel()

	g := acquireGenerator(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := g.GenerateGuarantee(ctx, DocumentRequest{Name: "Mario Rossi"})
	if err != nil {
		t.Fatalf("GenerateGuarantee() error = %v", err)
	}
	if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
	if res.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", res.PageCount)
	}
}

func TestIntegration_ContractThreePages(t *testing.T) {
	t.Parallel()

	g := acquireGenerator(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := g.GenerateContract(ctx, SampleRequest())
	if err != nil {
		t.Fatalf("GenerateContract() error = %v", err)
	}
	if res.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", res.PageCount)
	}
	// The pooled generators have no asset path, so both images are missing.
	if len(res.Failures) != 2 {
		t.Errorf("Failures = %d, want 2", len(res.Failures))
	}
}

func TestIntegration_ContractWithImages(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(WithAssetPath(assetDir(t)), WithTimeout(testTimeout))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := g.Generate(ctx, ContractAlias, SampleRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", res.PageCount)
	}
	if len(res.Failures) != 0 {
		t.Errorf("Failures = %v, want none", res.Failures)
	}
}

func TestIntegration_CardWithGrid(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(WithGrid(true), WithTimeout(testTimeout))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := g.GenerateCard(ctx, SampleRequest())
	if err != nil {
		t.Fatalf("GenerateCard() error = %v", err)
	}
	if res.PageCount < 1 {
		t.Errorf("PageCount = %d, want at least 1", res.PageCount)
	}
}

func TestIntegration_PageOutOfRange(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(
		WithAssetPath(assetDir(t)),
		WithTimeout(testTimeout),
		WithPlacements(overlay.Table{"garanzia": {{Image: "logo.png", Column: 2, Row: 2, Scale: 0.3, Page: 5}}}),
	)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	res, err := g.GenerateGuarantee(ctx, DocumentRequest{Name: "Mario Rossi"})
	if err != nil {
		t.Fatalf("GenerateGuarantee() error = %v", err)
	}
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0], overlay.ErrPageOutOfRange) {
		t.Errorf("Failures = %v, want one ErrPageOutOfRange", res.Failures)
	}
}
