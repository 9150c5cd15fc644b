package main

// Notes:
// - Handlers are exercised through httptest against the gin router; the
//   listener loop in runServe is only tested for flag errors.
// - zap observer captures request and failure logs.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	findoc "github.com/alnah/go-findoc"
	"github.com/alnah/go-findoc/internal/overlay"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(r *fakeRenderer) (*gin.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return newRouter(r, zap.New(core)), logs
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ---------------------------------------------------------------------------
// TestServer - HTTP API
// ---------------------------------------------------------------------------

func TestServer_Health(t *testing.T) {
	t.Parallel()

	router, logs := newTestRouter(&fakeRenderer{})
	w := doRequest(t, router, http.MethodGet, "/healthz", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body)
	}
	if logs.FilterMessage("request").Len() != 1 {
		t.Error("each request should be logged once")
	}
}

func TestServer_ListTemplates(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(&fakeRenderer{})
	w := doRequest(t, router, http.MethodGet, "/v1/templates", "")

	var body struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if strings.Join(body.Data, ",") != "carta,contrato,garanzia" {
		t.Errorf("templates = %v", body.Data)
	}
}

func TestServer_CreateDocument(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{result: &findoc.Result{
		PDF:       []byte("%PDF-1.7 contract"),
		PageCount: 3,
		Failures: []overlay.Failure{
			{Placement: overlay.Placement{Image: "logo.png"}, Err: overlay.ErrImagePlacement},
		},
	}}
	router, logs := newTestRouter(r)

	body := `{"name":"Mario Rossi","amount":"15000","durationMonths":36,"tan":"7.86","taeg":8.30}`
	w := doRequest(t, router, http.MethodPost, "/v1/documents/Contratto", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !bytes.Equal(w.Body.Bytes(), []byte("%PDF-1.7 contract")) {
		t.Errorf("body = %q", w.Body)
	}
	if w.Header().Get("X-Page-Count") != "3" || w.Header().Get("X-Overlay-Failures") != "1" {
		t.Errorf("headers = %v", w.Header())
	}

	if len(r.calls) != 1 || r.calls[0] != findoc.ContractAlias {
		t.Errorf("generated %v, want [contratto]", r.calls)
	}
	if !r.lastReq.Amount.Equal(decimal.NewFromInt(15000)) || !r.lastReq.EffectiveRate.Equal(decimal.RequireFromString("8.3")) {
		t.Errorf("request = %+v", r.lastReq)
	}
	if logs.FilterMessage("document returned without image").Len() != 1 {
		t.Error("overlay failures should be logged")
	}
}

func TestServer_CreateDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"malformed json", `{"name":`, nil, http.StatusBadRequest},
		{"wrong field type", `{"durationMonths":"tre"}`, nil, http.StatusBadRequest},
		{"template not found", `{"name":"Mario Rossi"}`, fmt.Errorf("%w: %q", findoc.ErrTemplateNotFound, "mutuo"), http.StatusNotFound},
		{"invalid request", `{"name":""}`, findoc.ErrInvalidRequest, http.StatusUnprocessableEntity},
		{"browser failure", `{"name":"Mario Rossi"}`, findoc.ErrBrowserConnect, http.StatusBadGateway},
		{"pool closed", `{"name":"Mario Rossi"}`, findoc.ErrPoolClosed, http.StatusServiceUnavailable},
		{"client gone", `{"name":"Mario Rossi"}`, context.Canceled, http.StatusServiceUnavailable},
		{"unexpected", `{"name":"Mario Rossi"}`, fmt.Errorf("internal error: boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, _ := newTestRouter(&fakeRenderer{err: tt.err})
			w := doRequest(t, router, http.MethodPost, "/v1/documents/garanzia", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body)
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Errorf("body = %s, want an error object", w.Body)
			}
		})
	}
}

func TestRunServe_FlagErrors(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"--workers", "-1"},
		{"extra"},
		{"--bogus"},
		{"-t", "never"},
	}
	for _, args := range tests {
		env, _, _ := testEnv(&fakeRenderer{})
		if err := runServe(context.Background(), args, env); exitCodeFor(err) != ExitUsage {
			t.Errorf("runServe(%v) error = %v, want a usage error", args, err)
		}
	}
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{}
	env, _, _ := testEnv(r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runServe(ctx, []string{"--addr", "127.0.0.1:0", "-q"}, env); err != nil {
		t.Fatalf("runServe() error = %v", err)
	}
	if !r.closed {
		t.Error("renderer should be closed on shutdown")
	}
}
