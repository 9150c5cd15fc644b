package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	findoc "github.com/alnah/go-findoc"
)

// ErrServe reports that the HTTP listener failed.
var ErrServe = errors.New("server failed")

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// runServe serves documents over HTTP until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()

	opts, err := buildOptions(flags.render, cfg, logger, env)
	if err != nil {
		return err
	}

	workers := findoc.ResolvePoolSize(flags.workers)
	renderer := env.NewPool(workers, opts...)
	defer func() { _ = renderer.Close() }()

	srv := &http.Server{
		Addr:              flags.addr,
		Handler:           newRouter(renderer, logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("listening", zap.String("addr", flags.addr), zap.Int("workers", workers))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrServe, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: shutdown: %w", ErrServe, err)
	}
	logger.Info("stopped")
	return nil
}

// server holds the HTTP handlers.
type server struct {
	renderer Renderer
	logger   *zap.Logger
}

// newRouter returns the HTTP API:
//
//	POST /v1/documents/:type   DocumentRequest JSON in, application/pdf out
//	GET  /v1/templates         bundled template names
//	GET  /healthz              liveness
func newRouter(renderer Renderer, logger *zap.Logger) *gin.Engine {
	s := &server{renderer: renderer, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/healthz", s.Health)
	r.GET("/v1/templates", s.ListTemplates)
	r.POST("/v1/documents/:type", s.CreateDocument)
	return r
}

func (s *server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": templateNames()})
}

// CreateDocument renders the document named by the path and returns the PDF.
// X-Page-Count carries the page count and X-Overlay-Failures the number of
// images that could not be placed.
func (s *server) CreateDocument(c *gin.Context) {
	docType, custom, err := parseVariant(c.Param("type"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "missing document type")
		return
	}

	var req findoc.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.renderer.Generate(c.Request.Context(), docType, req)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("document generation failed",
				zap.String("type", docType.String()), zap.Bool("custom", custom), zap.Error(err))
		}
		abortWithError(c, status, err.Error())
		return
	}

	for _, f := range res.Failures {
		s.logger.Warn("document returned without image", zap.String("type", docType.String()), zap.Error(f))
	}

	c.Header("X-Page-Count", strconv.Itoa(res.PageCount))
	c.Header("X-Overlay-Failures", strconv.Itoa(len(res.Failures)))
	c.Data(http.StatusOK, "application/pdf", res.PDF)
}

// statusFor maps generator errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, findoc.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, findoc.ErrInvalidRequest):
		return http.StatusUnprocessableEntity
	case errors.Is(err, findoc.ErrPoolClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, findoc.ErrRendering):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
