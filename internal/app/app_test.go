package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/phrasebook/internal/browser"
	"github.com/five82/phrasebook/internal/browser/browsertest"
	"github.com/five82/phrasebook/internal/catalog"
	"github.com/five82/phrasebook/internal/phrases"
)

const oneDoc = `{"exportDate":"2024-01-01","totalPhrases":1,"phrases":[{"arabicText":"a","englishText":"b","hindiText":"","urduText":"c","references":[{"surahNumber":1,"ayahNumber":1}]}]}`

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, kv := range os.Environ() {
		if k, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, "PHRASEBOOK_") {
			t.Setenv(k, "")
		}
	}
	return home
}

func TestLoadConfig_FlagOverridesWin(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config.toml")
	if err := os.WriteFile(path, []byte("base_url = \"http://file.example\"\nstart_page = \"/prayers\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(Options{ConfigPath: path, StartPage: "/praises"})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BaseURL != "http://file.example" {
		t.Fatalf("BaseURL = %q, want value from file", cfg.BaseURL)
	}
	if cfg.StartPage != "/praises" {
		t.Fatalf("StartPage = %q, want flag override", cfg.StartPage)
	}
}

func TestLoadCatalog_OverrideFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "catalog.yaml")
	yaml := "categories:\n  - path: /praises\n    label: Glorification\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cfg, err := LoadConfig(Options{ConfigPath: filepath.Join(home, "missing.toml")})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	cfg.Catalog = path
	cat, err := loadCatalog(cfg)
	if err != nil {
		t.Fatalf("loadCatalog returned error: %v", err)
	}
	c, _, _ := cat.Resolve("/praises")
	if c.Label != "Glorification" {
		t.Fatalf("Label = %q, want Glorification", c.Label)
	}
}

func TestCheckCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/phrases-praise-0.json" {
			_, _ = w.Write([]byte(oneDoc))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := phrases.NewClient(srv.URL, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	cat := catalog.Default()
	results := CheckCatalog(context.Background(), client, cat)
	if len(results) != cat.Len() {
		t.Fatalf("results = %d, want %d", len(results), cat.Len())
	}

	byPath := map[string]CheckResult{}
	for _, r := range results {
		byPath[r.Category.Path] = r
	}
	if r := byPath["/praises"]; r.Err != nil || r.Count != 1 {
		t.Fatalf("/praises = %+v, want 1 phrase", r)
	}
	if r := byPath["/prayers"]; !r.Skipped {
		t.Fatalf("/prayers = %+v, want skipped", r)
	}
	if r := byPath["/overview"]; r.Err == nil || !strings.Contains(r.Err.Error(), "404") {
		t.Fatalf("/overview = %+v, want 404 error", r)
	}

	var buf bytes.Buffer
	failed := writeCheck(&buf, results)
	if failed != cat.Len()-2 {
		t.Fatalf("failed = %d, want %d", failed, cat.Len()-2)
	}
	out := buf.String()
	for _, want := range []string{"PAGE", "/praises", "1 phrase", "no resource", "404 Not Found"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestTail(t *testing.T) {
	home := isolate(t)
	logPath := filepath.Join(home, "phrasebook.log")
	lines := `{"level":"info","time":"2024-01-01T00:00:00Z","message":"starting browser"}
{"level":"warn","time":"2024-01-01T00:00:01Z","message":"refusing to open reference"}
`
	if err := os.WriteFile(logPath, []byte(lines), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	t.Setenv("PHRASEBOOK_LOG_FILE", logPath)

	var buf bytes.Buffer
	if err := Tail(Options{ConfigPath: filepath.Join(home, "missing.toml")}, 1, false, &buf); err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "starting browser") || !strings.Contains(out, "refusing to open reference") {
		t.Fatalf("Tail output = %q, want only the last line", out)
	}
}

func TestDesktop_PrefersInjected(t *testing.T) {
	rec := &browsertest.Recorder{}
	opener, clip := desktop(Options{Opener: rec, Clipboard: rec})
	if opener != rec || clip != rec {
		t.Fatalf("desktop ignored injected opener/clipboard")
	}

	opener, clip = desktop(Options{})
	if _, ok := opener.(browser.System); !ok {
		t.Fatalf("default opener = %T, want browser.System", opener)
	}
	if _, ok := clip.(browser.System); !ok {
		t.Fatalf("default clipboard = %T, want browser.System", clip)
	}
}
