// Package browsertest provides an in-memory browser.Opener and
// browser.Clipboard for tests.
package browsertest

import (
	"sync"

	"github.com/five82/phrasebook/internal/browser"
)

// Recorder captures opened URLs and copied text. A non-nil Err is returned
// from every call instead of recording.
type Recorder struct {
	mu     sync.Mutex
	Opened []string
	Copied []string
	Err    error
}

var (
	_ browser.Opener    = (*Recorder)(nil)
	_ browser.Clipboard = (*Recorder)(nil)
)

func (r *Recorder) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Opened = append(r.Opened, url)
	return nil
}

func (r *Recorder) Copy(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Copied = append(r.Copied, text)
	return nil
}
