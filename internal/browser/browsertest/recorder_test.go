package browsertest

import (
	"errors"
	"testing"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_ = r.Open("https://quran.com/1/1")
	_ = r.Copy("text")
	if len(r.Opened) != 1 || len(r.Copied) != 1 {
		t.Fatalf("recorder opened=%v copied=%v", r.Opened, r.Copied)
	}

	r.Err = errors.New("no display")
	if err := r.Open("x"); err == nil {
		t.Fatalf("Open should return configured error")
	}
	if len(r.Opened) != 1 {
		t.Fatalf("failed open was recorded: %v", r.Opened)
	}
}
