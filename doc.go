// Package findoc renders the financial documents of A & G Money (loan
// contract, guarantee letter, credit card agreement) to PDF using headless
// Chrome, then stamps the company logo and signatures onto the pages.
//
// # Quick Start
//
// Create a generator, generate a document, and close when done:
//
//	gen, err := findoc.NewGenerator(findoc.WithAssetPath("./assets"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.GenerateContract(ctx, findoc.DocumentRequest{
//	    Name:           "Mario Rossi",
//	    Amount:         decimal.NewFromInt(15000),
//	    DurationMonths: 36,
//	    NominalRate:    decimal.RequireFromString("7.86"),
//	    EffectiveRate:  decimal.RequireFromString("8.30"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("contratto.pdf", result.PDF, 0644)
//
// The monthly installment is computed from the terms unless
// DocumentRequest.Payment is set.
//
// # Generation Pipeline
//
//  1. Template lookup: the asset directory first, then the built-in
//     templates. "contrato" and "contratto" resolve to each other, and a
//     custom file under either spelling beats the built-in one.
//  2. Template execution with the formatted request (html/template).
//  3. HTML injection (heading weight, optional layout grid), then relative
//     img/link references are resolved against the asset directory.
//  4. PDF rendering via headless Chrome on A4 with the confidentiality footer.
//  5. Image stamping at grid positions (contracts only by default).
//
// # Image Placements
//
// Pages are divided into a 25x35 grid. A placement names an image in the
// asset directory, a 1-based column and row (fractions allowed), a scale
// and a 0-based page. Images that cannot be placed never fail the document:
// they are logged at warn level and returned in Result.Failures.
//
//	gen, err := findoc.NewGenerator(
//	    findoc.WithAssetPath("./assets"),
//	    findoc.WithPlacements(overlay.Table{
//	        "garanzia": {{Image: "sing_1.png", Column: 3, Row: 30, Scale: 0.2}},
//	    }),
//	)
//
// # Parallel Processing
//
// A Generator is not safe for concurrent use. Servers use GeneratorPool,
// which owns one browser per generator:
//
//	pool := findoc.NewGeneratorPool(4, findoc.WithAssetPath("./assets"))
//	defer pool.Close()
//
//	gen, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package findoc
