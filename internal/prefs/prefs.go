// Package prefs handles phrasebook user preferences persistence.
// Preferences are stored in ~/.config/phrasebook/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme             string `toml:"theme"`
	KeyboardGuideSeen bool   `toml:"keyboard_guide_seen"`
}

const (
	defaultPrefsPath = "~/.config/phrasebook/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Port is what the UI needs from preference storage.
type Port interface {
	GuideSeen() bool
	MarkGuideSeen() error
	Theme() string
	SetTheme(name string) error
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// FileStore is a Port backed by a prefs file. It reads the file once.
type FileStore struct {
	path  string
	prefs Prefs
}

var _ Port = (*FileStore)(nil)

// Open loads the prefs file at path (empty uses the default path).
func Open(path string) *FileStore {
	p, _ := Load(path)
	return &FileStore{path: path, prefs: p}
}

func (s *FileStore) GuideSeen() bool { return s.prefs.KeyboardGuideSeen }

func (s *FileStore) MarkGuideSeen() error {
	if s.prefs.KeyboardGuideSeen {
		return nil
	}
	s.prefs.KeyboardGuideSeen = true
	return Save(s.path, s.prefs)
}

func (s *FileStore) Theme() string { return s.prefs.Theme }

func (s *FileStore) SetTheme(name string) error {
	s.prefs.Theme = name
	return Save(s.path, s.prefs)
}

// Memory is an in-process Port.
type Memory struct {
	Seen      bool
	ThemeName string
	Writes    int
}

var _ Port = (*Memory)(nil)

func (m *Memory) GuideSeen() bool { return m.Seen }

func (m *Memory) MarkGuideSeen() error {
	m.Seen = true
	m.Writes++
	return nil
}

func (m *Memory) Theme() string {
	if m.ThemeName == "" {
		return defaultTheme
	}
	return m.ThemeName
}

func (m *Memory) SetTheme(name string) error {
	m.ThemeName = name
	m.Writes++
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
