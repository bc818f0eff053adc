package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "phrasebook")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "custom.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{Theme: "Slate"}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Slate")
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsGuideFlag(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("keyboard_guide_seen = true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !p.KeyboardGuideSeen {
		t.Fatalf("KeyboardGuideSeen = false, want true")
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestFileStore_MarkGuideSeenPersists(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	store := Open(prefsFile)
	if store.GuideSeen() {
		t.Fatalf("GuideSeen = true for a fresh store")
	}
	if err := store.MarkGuideSeen(); err != nil {
		t.Fatalf("MarkGuideSeen returned error: %v", err)
	}
	if !store.GuideSeen() {
		t.Fatalf("GuideSeen = false after MarkGuideSeen")
	}

	reopened := Open(prefsFile)
	if !reopened.GuideSeen() {
		t.Fatalf("guide flag not persisted")
	}
}

func TestFileStore_SetThemeKeepsGuideFlag(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")

	store := Open(prefsFile)
	if err := store.MarkGuideSeen(); err != nil {
		t.Fatalf("MarkGuideSeen returned error: %v", err)
	}
	if err := store.SetTheme("Slate"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	reopened := Open(prefsFile)
	if reopened.Theme() != "Slate" || !reopened.GuideSeen() {
		t.Fatalf("reopened = theme %q seen %v, want Slate/true", reopened.Theme(), reopened.GuideSeen())
	}
}

func TestMemory_CountsWrites(t *testing.T) {
	m := &Memory{}
	if m.Theme() != defaultTheme {
		t.Fatalf("Theme = %q, want %q", m.Theme(), defaultTheme)
	}
	_ = m.MarkGuideSeen()
	_ = m.SetTheme("Slate")
	if !m.GuideSeen() || m.Theme() != "Slate" || m.Writes != 2 {
		t.Fatalf("memory = %#v", m)
	}
}
