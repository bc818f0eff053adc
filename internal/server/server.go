// Package server serves phrase documents over HTTP for the browser.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/five82/phrasebook/internal/cache"
	"github.com/five82/phrasebook/internal/catalog"
	"github.com/five82/phrasebook/internal/library"
)

// Library is the document source behind the server.
type Library interface {
	Lookup(name string) (library.Document, bool)
	Snapshot() library.Snapshot
}

// Options configure a Server.
type Options struct {
	Store   Library
	Cache   cache.Cache
	Catalog *catalog.Catalog
	Log     zerolog.Logger
}

// Server is the phrase document HTTP server.
type Server struct {
	store   Library
	cache   cache.Cache
	catalog *catalog.Catalog
	log     zerolog.Logger
	engine  *gin.Engine
}

// New builds the gin engine and routes.
func New(opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:   opts.Store,
		cache:   opts.Cache,
		catalog: opts.Catalog,
		log:     opts.Log,
	}
	if s.store == nil {
		s.store = &library.Store{}
	}
	if s.cache == nil {
		s.cache = cache.NewMemory()
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.log))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods:    []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Accept", "If-None-Match"},
		ExposeHeaders:   []string{"Content-Length", "ETag", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", s.healthz)
	r.GET("/api/categories", s.categories)
	r.GET("/:file", s.document)
	r.HEAD("/:file", s.document)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Publish replaces the cached documents with snap. It is the only cache
// writer and must run from the single reload goroutine; request handlers
// only read the cache and fall back to the store.
func (s *Server) Publish(ctx context.Context, snap library.Snapshot) {
	if err := s.cache.Purge(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache purge failed")
	}
	for _, name := range snap.Names() {
		doc := snap.Documents[name]
		if err := s.cache.Set(ctx, name, cache.Entry{Body: doc.Body, ETag: doc.ETag}); err != nil {
			s.log.Warn().Err(err).Str("file", name).Msg("cache write failed")
		}
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
