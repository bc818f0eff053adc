package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Read returns at most maxLines from the end of the file at path.
// A non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// FormatLine renders one JSON log line the way the console logger does.
// Lines that are not JSON events are returned unchanged.
func FormatLine(line string, color bool) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	var buf bytes.Buffer
	cw := zerolog.ConsoleWriter{Out: &buf, NoColor: !color, TimeFormat: time.DateTime}
	if _, err := cw.Write([]byte(line)); err != nil {
		return line
	}
	return strings.TrimRight(buf.String(), "\n")
}

// FormatLines applies FormatLine to every line.
func FormatLines(lines []string, color bool) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = FormatLine(line, color)
	}
	return out
}
