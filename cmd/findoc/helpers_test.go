package main

// Notes:
// - fakeRenderer stands in for the Chrome-backed generator so CLI and HTTP
//   behavior is tested without a browser.
// - testEnv wires buffers for stdout/stderr and records the options each
//   generator was built with.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	findoc "github.com/alnah/go-findoc"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// fakeRenderer returns a fixed result or error and records its calls.
type fakeRenderer struct {
	mu      sync.Mutex
	result  *findoc.Result
	err     error
	calls   []findoc.DocumentType
	lastReq findoc.DocumentRequest
	closed  bool
}

func (f *fakeRenderer) Generate(_ context.Context, docType findoc.DocumentType, req findoc.DocumentRequest) (*findoc.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, docType)
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &findoc.Result{PDF: []byte("%PDF-1.7 fake"), PageCount: 1}, nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// testEnv returns an Environment backed by r.
func testEnv(r *fakeRenderer) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		NewGenerator: func(opts ...findoc.Option) (Renderer, error) {
			return r, nil
		},
		NewPool: func(size int, opts ...findoc.Option) Renderer {
			return r
		},
	}
	return env, &stdout, &stderr
}

// chdir moves the test into a fresh directory so sample files land there.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
