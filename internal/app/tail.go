package app

import (
	"fmt"
	"io"

	"github.com/five82/phrasebook/internal/logtail"
)

// Tail writes the last n lines of the browser log to w, pretty-printed.
func Tail(opts Options, n int, color bool, w io.Writer) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	lines, err := logtail.Read(cfg.LogPath(), n)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	for _, line := range logtail.FormatLines(lines, color) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
