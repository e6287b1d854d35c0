// Package server exposes the post collection over HTTP: the blog index,
// individual posts, a sitemap, social preview images, health and metrics.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"folio/internal/content"
	"folio/internal/logger"
	"folio/internal/metrics"
	"folio/internal/ogimage"
	"folio/internal/post"
	"folio/internal/render"
	"folio/internal/sitemap"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Config holds the server settings.
type Config struct {
	Addr     string
	BaseURL  string
	BlogPath string
	Debug    bool
	// ShutdownTimeout bounds graceful shutdown. Zero means 10s.
	ShutdownTimeout time.Duration
}

// Deps are the collaborators the handlers read from.
type Deps struct {
	Repo    *content.Repository
	Pages   *render.Renderer
	Images  *ogimage.Renderer
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// Server is the HTTP front end for one loaded collection.
type Server struct {
	cfg    Config
	deps   Deps
	router *gin.Engine
	http   *http.Server
}

// New builds the router and registers every route.
func New(cfg Config, deps Deps) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recoveryMiddleware(deps.Logger))
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(deps.Logger))
	router.Use(metricsMiddleware(deps.Metrics))

	s := &Server{cfg: cfg, deps: deps, router: router}
	s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *Server) routes() {
	index := s.cfg.BlogPath
	if index == "" {
		index = "/"
	}
	s.router.GET(index, s.handleIndex)
	s.router.GET(s.cfg.BlogPath+"/:slug", s.handlePost)
	s.router.GET("/sitemap.xml", s.handleSitemap)
	s.router.GET("/og/:image", s.handleImage)
	s.router.GET("/health", s.handleHealth)
	s.router.HEAD("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	s.router.NoRoute(s.handleNotFound)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("starting HTTP server", logger.String("address", s.cfg.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.deps.Logger.Info("shutting down HTTP server", logger.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (s *Server) handleIndex(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.deps.Pages.Index(&buf, s.deps.Repo.ListAll()); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handlePost(c *gin.Context) {
	p, ok := s.deps.Repo.GetByIdentifier(post.Slug(c.Param("slug")))
	if !ok {
		s.handleNotFound(c)
		return
	}
	var buf bytes.Buffer
	if err := s.deps.Pages.Post(&buf, p); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleNotFound(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.deps.Pages.NotFound(&buf); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleSitemap(c *gin.Context) {
	entries := sitemap.Entries(s.deps.Repo.ListAll(), s.cfg.BaseURL, s.cfg.BlogPath)
	var buf bytes.Buffer
	if err := sitemap.Write(&buf, entries); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

// handleImage serves /og/<slug>.png. Unknown slugs get the generic image
// rather than an error so link unfurlers always have something to show.
func (s *Server) handleImage(c *gin.Context) {
	name := c.Param("image")
	slug, isPNG := strings.CutSuffix(name, ".png")
	if !isPNG {
		s.handleNotFound(c)
		return
	}

	var buf bytes.Buffer
	var err error
	if name == ogimage.FallbackName {
		err = s.deps.Images.Fallback(&buf)
	} else if p, ok := s.deps.Repo.GetPreview(post.Slug(slug)); ok {
		err = s.deps.Images.Render(&buf, p)
	} else {
		s.deps.Metrics.PreviewFallback.Inc()
		err = s.deps.Images.Fallback(&buf)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"posts":  s.deps.Repo.Len(),
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
