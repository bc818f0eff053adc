// Package browser hands URLs and text to the desktop.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(url string) error
}

// Clipboard receives copied text.
type Clipboard interface {
	Copy(text string) error
}

// System uses the platform URL handler and clipboard.
type System struct{}

var (
	_ Opener    = System{}
	_ Clipboard = System{}
)

// Open starts the platform URL handler without waiting for it to exit.
func (System) Open(url string) error {
	name, args := command(runtime.GOOS, url)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Copy writes text to the system clipboard.
func (System) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

func command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
