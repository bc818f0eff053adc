package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/five82/phrasebook/internal/cache"
	"github.com/five82/phrasebook/internal/config"
	"github.com/five82/phrasebook/internal/library"
	"github.com/five82/phrasebook/internal/server"
)

// Serve runs the document server and the library reloader until ctx is
// cancelled or either fails.
func Serve(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	log := stderrLogger(cfg.LogLevel)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	docCache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	store := &library.Store{}
	srv := server.New(server.Options{
		Store:   store,
		Cache:   docCache,
		Catalog: cat,
		Log:     log,
	})
	reloader := &library.Reloader{
		Dir:      cfg.DataDir,
		Store:    store,
		Interval: cfg.ReloadEvery,
		Log:      log.With().Str("component", "library").Logger(),
		OnReload: srv.Publish,
	}

	// Populate the store before accepting requests.
	snap := reloader.Reload(ctx)
	log.Info().
		Str("addr", cfg.Addr).
		Str("data_dir", cfg.DataDir).
		Strs("documents", snap.Names()).
		Msg("serving phrase documents")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return reloader.Run(gctx)
	})
	g.Go(func() error {
		return srv.ListenAndServe(gctx, cfg.Addr)
	})
	return g.Wait()
}

// openCache uses Redis when an address is configured and an in-memory
// cache otherwise.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(), func() {}, nil
	}
	rc, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	return rc, func() { _ = rc.Close() }, nil
}
