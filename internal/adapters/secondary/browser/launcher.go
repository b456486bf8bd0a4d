// Package browser opens the preview URL in the user's default browser once
// the serve command has the server up.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// Launcher implements the BrowserLauncher interface with a per-platform
// table of opener commands, tried in order.
type Launcher struct {
	openers []opener
}

type opener struct {
	name    string
	command string
	args    func(url string) []string
}

// NewLauncher creates a launcher for the current platform.
func NewLauncher() *Launcher {
	return &Launcher{
		openers: platformOpeners(),
	}
}

// Launch opens a URL in the default browser. With noOpen set it does
// nothing, so callers can pass the flag through unconditionally.
func (l *Launcher) Launch(url string, noOpen bool) error {
	if noOpen {
		return nil
	}

	op, err := l.selectOpener()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	cmd := exec.Command(op.command, op.args(url)...) // #nosec G204 - command comes from the fixed platform table
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	// Don't wait for the browser to close
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Detect returns the name of the opener that would be used.
func (l *Launcher) Detect() (string, error) {
	op, err := l.selectOpener()
	if err != nil {
		return "", err
	}
	return op.name, nil
}

// selectOpener returns the first opener whose command is on PATH.
func (l *Launcher) selectOpener() (*opener, error) {
	if len(l.openers) == 0 {
		return nil, errors.New("no browser opener available on this platform")
	}

	for _, candidate := range l.openers {
		if _, err := exec.LookPath(candidate.command); err == nil {
			return &candidate, nil
		}
	}

	return nil, errors.New("no usable browser opener found in PATH")
}

func platformOpeners() []opener {
	passURL := func(url string) []string { return []string{url} }

	switch runtime.GOOS {
	case "darwin":
		return []opener{
			{name: "default", command: "open", args: passURL},
		}
	case "linux":
		return []opener{
			{name: "xdg-open", command: "xdg-open", args: passURL},
			{name: "chrome", command: "google-chrome", args: passURL},
			{name: "chromium", command: "chromium", args: passURL},
			{name: "firefox", command: "firefox", args: passURL},
		}
	case "windows":
		return []opener{
			{name: "default", command: "cmd", args: func(url string) []string {
				return []string{"/c", "start", url}
			}},
		}
	default:
		return nil
	}
}

// Ensure Launcher implements ports.BrowserLauncher
var _ ports.BrowserLauncher = (*Launcher)(nil)
