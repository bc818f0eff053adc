package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds phrasebook settings for both the browser and the server.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	StartPage string
	Catalog   string

	Addr          string
	DataDir       string
	ReloadEvery   time.Duration
	RedisAddr     string
	RedisUsername string
	RedisPassword string

	LogFile  string
	LogLevel string
}

const (
	defaultConfigPath  = "~/.config/phrasebook/config.toml"
	defaultLogFile     = "~/.local/state/phrasebook/phrasebook.log"
	defaultDataDir     = "~/.local/share/phrasebook"
	defaultBaseURL     = "http://127.0.0.1:8080"
	defaultAddr        = "127.0.0.1:8080"
	defaultStartPage   = "/overview"
	defaultLogLevel    = "info"
	defaultTimeout     = 10 * time.Second
	defaultReloadEvery = time.Minute

	envPrefix = "PHRASEBOOK_"
)

type rawConfig struct {
	BaseURL       string `toml:"base_url"`
	Timeout       string `toml:"timeout"`
	StartPage     string `toml:"start_page"`
	Catalog       string `toml:"catalog"`
	Addr          string `toml:"addr"`
	DataDir       string `toml:"data_dir"`
	ReloadEvery   string `toml:"reload_every"`
	RedisAddr     string `toml:"redis_addr"`
	RedisUsername string `toml:"redis_username"`
	RedisPassword string `toml:"redis_password"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		BaseURL:     defaultBaseURL,
		Timeout:     defaultTimeout,
		StartPage:   defaultStartPage,
		Addr:        defaultAddr,
		DataDir:     mustExpand(defaultDataDir),
		ReloadEvery: defaultReloadEvery,
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
// Environment variables are not consulted; see LoadWithEnv.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.apply(raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads the config file and overlays values from envFile (a
// dotenv file, skipped when missing) and PHRASEBOOK_* process variables.
// Process variables win over the dotenv file.
func LoadWithEnv(path, envFile string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}

	vars := map[string]string{}
	if strings.TrimSpace(envFile) != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read env file: %w", err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			vars[k] = v
		}
	}

	if err := cfg.apply(fromEnv(vars)); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func fromEnv(vars map[string]string) rawConfig {
	get := func(name string) string { return vars[envPrefix+name] }
	return rawConfig{
		BaseURL:       get("BASE_URL"),
		Timeout:       get("TIMEOUT"),
		StartPage:     get("START_PAGE"),
		Catalog:       get("CATALOG"),
		Addr:          get("ADDR"),
		DataDir:       get("DATA_DIR"),
		ReloadEvery:   get("RELOAD_EVERY"),
		RedisAddr:     get("REDIS_ADDR"),
		RedisUsername: get("REDIS_USERNAME"),
		RedisPassword: get("REDIS_PASSWORD"),
		LogFile:       get("LOG_FILE"),
		LogLevel:      get("LOG_LEVEL"),
	}
}

// apply overlays the non-empty fields of raw.
func (c *Config) apply(raw rawConfig) error {
	setString(&c.BaseURL, raw.BaseURL)
	setString(&c.StartPage, raw.StartPage)
	setString(&c.Addr, raw.Addr)
	setString(&c.RedisAddr, raw.RedisAddr)
	setString(&c.RedisUsername, raw.RedisUsername)
	setString(&c.RedisPassword, raw.RedisPassword)
	setString(&c.LogLevel, raw.LogLevel)

	if v := strings.TrimSpace(raw.Catalog); v != "" {
		c.Catalog = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		c.DataDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}

	if err := setDuration(&c.Timeout, "timeout", raw.Timeout); err != nil {
		return err
	}
	return setDuration(&c.ReloadEvery, "reload_every", raw.ReloadEvery)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("15s") or a bare number of seconds.
func setDuration(dst *time.Duration, name, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	*dst = d
	return nil
}

// LogPath returns the path to the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return mustExpand(defaultLogFile)
	}
	return c.LogFile
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
