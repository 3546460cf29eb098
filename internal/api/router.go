// Package api exposes document generation over HTTP.
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish"
	"github.com/ArtieFishal/lastwish/internal/yamlutil"
)

// Generator produces one PDF document per call.
type Generator interface {
	Generate(ctx context.Context, input lastwish.Input) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ Generator = (*lastwish.Generator)(nil)
	_ Generator = (*lastwish.GeneratorPool)(nil)
)

// Options configures a Router.
type Options struct {
	Version      string
	Jurisdiction lastwish.Jurisdiction // applied when a request has none
	MaxBodyBytes int64                 // 0 = yamlutil.MaxBundleSize
	Logger       *zap.Logger
}

// Router wraps the gin engine with the document handlers.
type Router struct {
	engine    *gin.Engine
	logger    *zap.Logger
	version   string
	documents *DocumentHandler
}

var setupGin sync.Once

// NewRouter creates a Router serving gen.
func NewRouter(gen Generator, opts Options) *Router {
	// Balances and token ids keep every digit when decoded as json.Number.
	setupGin.Do(func() {
		gin.SetMode(gin.ReleaseMode)
		binding.EnableDecoderUseNumber = true
	})

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = int64(yamlutil.MaxBundleSize)
	}

	r := &Router{
		engine:    gin.New(),
		logger:    opts.Logger,
		version:   opts.Version,
		documents: NewDocumentHandler(gen, opts.Jurisdiction, opts.MaxBodyBytes, opts.Logger),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(Recovery(r.logger))
	r.engine.Use(Logger(r.logger))
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": r.version})
	})

	v1 := r.engine.Group("/api/v1")
	{
		v1.POST("/documents", r.documents.Create)
	}
}

// Handler returns the router as an http.Handler.
func (r *Router) Handler() http.Handler {
	return r.engine
}
