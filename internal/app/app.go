package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/phrasebook/internal/browser"
	"github.com/five82/phrasebook/internal/catalog"
	"github.com/five82/phrasebook/internal/config"
	"github.com/five82/phrasebook/internal/logging"
	"github.com/five82/phrasebook/internal/phrases"
	"github.com/five82/phrasebook/internal/prefs"
	"github.com/five82/phrasebook/internal/ui"
)

// Options configure the phrasebook commands. Non-empty overrides win over
// the config file and environment.
type Options struct {
	ConfigPath string
	EnvFile    string
	PrefsPath  string // empty uses default ~/.config/phrasebook/prefs.toml

	// Opener and Clipboard default to the system browser and clipboard.
	Opener    browser.Opener
	Clipboard browser.Clipboard

	BaseURL   string
	StartPage string
	Addr      string
	DataDir   string
	LogLevel  string
}

// LoadConfig resolves the layered configuration for opts.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.LoadWithEnv(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	override(&cfg.BaseURL, opts.BaseURL)
	override(&cfg.StartPage, opts.StartPage)
	override(&cfg.Addr, opts.Addr)
	override(&cfg.DataDir, opts.DataDir)
	override(&cfg.LogLevel, opts.LogLevel)
	return cfg, nil
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Catalog, err)
	}
	return cat, nil
}

// Browse runs the terminal browser until the user quits or ctx is cancelled.
// Logs go to the configured file so they do not corrupt the screen.
func Browse(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	log, closer, err := logging.OpenFile(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	client, err := phrases.NewClient(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init phrase client: %w", err)
	}

	store := prefs.Open(opts.PrefsPath)

	log.Info().
		Str("base_url", client.BaseURL()).
		Str("page", cfg.StartPage).
		Int("categories", cat.Len()).
		Msg("starting browser")

	opener, clip := desktop(opts)
	err = ui.Run(ui.Options{
		Context:   ctx,
		Fetcher:   client,
		Catalog:   cat,
		Prefs:     store,
		Opener:    opener,
		Clipboard: clip,
		StartPage: cfg.StartPage,
		Log:       log,
	})
	if err != nil {
		log.Error().Err(err).Msg("browser exited with error")
		return err
	}
	log.Info().Msg("browser exited")
	return nil
}

// desktop returns the configured opener and clipboard, falling back to the
// system ones.
func desktop(opts Options) (browser.Opener, browser.Clipboard) {
	opener, clip := opts.Opener, opts.Clipboard
	if opener == nil {
		opener = browser.System{}
	}
	if clip == nil {
		clip = browser.System{}
	}
	return opener, clip
}

// stderrLogger is used by the non-interactive commands.
func stderrLogger(level string) zerolog.Logger {
	return logging.Console(os.Stderr, level)
}
