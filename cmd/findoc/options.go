package main

import (
	"fmt"

	"go.uber.org/zap"

	findoc "github.com/alnah/go-findoc"
	"github.com/alnah/go-findoc/internal/config"
	"github.com/alnah/go-findoc/internal/hints"
)

// defaultAssetPath is where the CLI looks for templates and images when
// neither --asset-path nor assets.basePath is set.
const defaultAssetPath = "."

// loadConfig loads the named config, or returns the defaults when name is
// empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	return cfg, nil
}

// resolveAssetPath applies the flag, then the config, then the working
// directory.
func resolveAssetPath(flagPath string, cfg *config.Config) string {
	if flagPath != "" {
		return flagPath
	}
	if cfg.Assets.BasePath != "" {
		return cfg.Assets.BasePath
	}
	return defaultAssetPath
}

// buildOptions merges flags into cfg (flags win) and returns the generator
// options.
func buildOptions(f renderFlags, cfg *config.Config, logger *zap.Logger, env *Environment) ([]findoc.Option, error) {
	opts := []findoc.Option{
		findoc.WithLogger(logger),
		findoc.WithAssetPath(resolveAssetPath(f.assetPath, cfg)),
		findoc.WithGrid(f.grid || cfg.Render.Grid),
		findoc.WithFooterText(cfg.Footer.Text),
		findoc.WithDateFormat(cfg.Document.DateFormat),
	}
	if env.Now != nil {
		opts = append(opts, findoc.WithClock(env.Now))
	}

	timeout, err := parseTimeout(f.timeout)
	if err != nil {
		return nil, err
	}
	if timeout == 0 {
		if timeout, err = cfg.Render.TimeoutDuration(); err != nil {
			return nil, err
		}
	}
	if timeout > 0 {
		opts = append(opts, findoc.WithTimeout(timeout))
	}

	if cfg.Render.MarginTop > 0 || cfg.Render.MarginBottom > 0 {
		top, bottom := cfg.Render.MarginTop, cfg.Render.MarginBottom
		if top == 0 {
			top = findoc.DefaultMarginMM
		}
		if bottom == 0 {
			bottom = findoc.DefaultMarginMM
		}
		opts = append(opts, findoc.WithMargins(top, bottom))
	}

	if len(cfg.Placements) > 0 {
		opts = append(opts, findoc.WithPlacements(cfg.Placements))
	}
	return opts, nil
}
