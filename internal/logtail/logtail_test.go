package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "none.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "empty line",
			input:    "",
			contains: nil,
		},
		{
			name:     "plain text passes through",
			input:    "not json",
			contains: []string{"not json"},
		},
		{
			name:     "zerolog event",
			input:    `{"level":"warn","page":"/praises","time":"2026-10-19T10:00:00Z","message":"fetch failed"}`,
			contains: []string{"WRN", "fetch failed", "page=/praises"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatLine(tt.input, false)
			if tt.contains == nil && got != tt.input {
				t.Fatalf("FormatLine() = %q, want unchanged", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatLine() = %q, want it to contain %q", got, want)
				}
			}
			if strings.HasSuffix(got, "\n") {
				t.Errorf("FormatLine() kept trailing newline: %q", got)
			}
		})
	}
}

func TestFormatLines_PreservesOrder(t *testing.T) {
	input := []string{"first", `{"level":"info","message":"second"}`, "third"}
	got := FormatLines(input, false)
	if len(got) != 3 || got[0] != "first" || got[2] != "third" {
		t.Fatalf("FormatLines() = %q", got)
	}
	if !strings.Contains(got[1], "second") {
		t.Fatalf("FormatLines()[1] = %q", got[1])
	}
}
