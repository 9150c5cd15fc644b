package main

import (
	"context"

	findoc "github.com/alnah/go-findoc"
)

// poolRenderer adapts findoc.GeneratorPool to Renderer: every call borrows a
// generator for the duration of one document.
type poolRenderer struct {
	pool *findoc.GeneratorPool
}

// Compile-time check that poolRenderer implements Renderer.
var _ Renderer = (*poolRenderer)(nil)

func (p *poolRenderer) Generate(ctx context.Context, docType findoc.DocumentType, req findoc.DocumentRequest) (*findoc.Result, error) {
	g, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.pool.Release(g)

	return g.Generate(ctx, docType, req)
}

func (p *poolRenderer) Close() error {
	return p.pool.Close()
}

// Size returns the pool capacity.
func (p *poolRenderer) Size() int {
	return p.pool.Size()
}
