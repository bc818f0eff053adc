package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Str("page", "/praises").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, `"page":"/praises"`) || !strings.Contains(out, `"message":"shown"`) {
		t.Fatalf("output = %q", out)
	}
}

func TestOpenFile_CreatesDirAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "phrasebook.log")

	log, closer, err := OpenFile(path, "info")
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	log.Info().Msg("first")
	_ = closer.Close()

	log, closer, err = OpenFile(path, "info")
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	log.Info().Msg("second")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Fatalf("log has %d lines, want 2: %q", got, data)
	}
}
