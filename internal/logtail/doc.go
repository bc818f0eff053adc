// Package logtail reads the end of the phrasebook log file and renders its
// JSON lines for a terminal.
//
// Read keeps a ring buffer of maxLines entries, so memory use is bounded by
// the requested tail rather than the file size. A missing file yields no
// lines and no error.
//
//	lines, err := logtail.Read(cfg.LogPath(), 50)
//	for _, l := range logtail.FormatLines(lines, true) {
//		fmt.Println(l)
//	}
package logtail
