package main

import (
	"context"
	"io"
	"os"
	"time"

	findoc "github.com/alnah/go-findoc"
)

// Renderer generates documents. Implementations returned by
// Environment.NewPool are safe for concurrent use.
type Renderer interface {
	Generate(ctx context.Context, docType findoc.DocumentType, req findoc.DocumentRequest) (*findoc.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Renderer = (*findoc.Generator)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the document backends.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewGenerator func(opts ...findoc.Option) (Renderer, error)
	NewPool      func(size int, opts ...findoc.Option) Renderer
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewGenerator: func(opts ...findoc.Option) (Renderer, error) {
			g, err := findoc.NewGenerator(opts...)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
		NewPool: func(size int, opts ...findoc.Option) Renderer {
			return &poolRenderer{pool: findoc.NewGeneratorPool(size, opts...)}
		},
	}
}
