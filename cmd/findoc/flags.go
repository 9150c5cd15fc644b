package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrUsage reports invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags that configure the generator.
type renderFlags struct {
	timeout   string
	grid      bool
	assetPath string
}

// requestFlags overrides fields of the sample request.
type requestFlags struct {
	name     string
	amount   string
	duration int
	tan      string
	taeg     string
	payment  string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common  commonFlags
	output  string
	render  renderFlags
	request requestFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common  commonFlags
	addr    string
	workers int
	render  renderFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addRenderFlags adds generator flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.grid, "grid", false, "draw the layout grid on every page")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory holding templates and images (default: working directory)")
}

// addRequestFlags adds sample request overrides to a FlagSet.
func addRequestFlags(fs *flag.FlagSet, f *requestFlags) {
	fs.StringVar(&f.name, "name", "", "client name")
	fs.StringVar(&f.amount, "amount", "", "financed amount, e.g. 15000")
	fs.IntVar(&f.duration, "duration", 0, "duration in months")
	fs.StringVar(&f.tan, "tan", "", "nominal annual rate in percent, e.g. 7.86")
	fs.StringVar(&f.taeg, "taeg", "", "effective annual rate in percent, e.g. 8.30")
	fs.StringVar(&f.payment, "payment", "", "monthly payment (default: computed)")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory or .pdf file")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addRequestFlags(fs, &f.request)

	fs.Usage = func() { printGenerateUsage(os.Stderr) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	if f.request.duration < 0 {
		return nil, nil, fmt.Errorf("%w: --duration cannot be negative", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVar(&f.addr, "addr", ":8080", "listen address")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel browsers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if f.workers < 0 {
		return nil, fmt.Errorf("%w: --workers cannot be negative", ErrUsage)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

// parse runs fs.Parse and tags failures as usage errors.
// flag.ErrHelp is returned unwrapped.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseTimeout parses a --timeout value. Empty means unset.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: --timeout %q: %v", ErrUsage, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, d)
	}
	return d, nil
}
