package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/brieflabs/brief/internal/config"
)

// Launcher hands article links off to the system browser.
type Launcher struct {
	opener string
}

func NewLauncher(cfg *config.Config) *Launcher {
	opener := cfg.Browser.Opener
	if opener == "" {
		opener = systemOpener()
	}
	return &Launcher{opener: opener}
}

// Open launches the configured opener with the given link. The opener
// process is started detached so the TUI stays responsive.
func (l *Launcher) Open(link string) error {
	if err := validateLink(link); err != nil {
		return err
	}
	if l.opener == "" {
		return fmt.Errorf("no application found to open URL")
	}

	cmd := exec.Command(l.opener, link)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.opener, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func validateLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("empty URL")
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q URL", u.Scheme)
	}
	return nil
}

func systemOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err == nil {
			return "xdg-open"
		}
		return "sensible-browser"
	case "windows":
		return "start"
	default:
		return ""
	}
}
