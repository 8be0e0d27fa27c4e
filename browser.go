package quotecard

import (
	"fmt"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-quotecard/internal/process"
)

// browserHandle owns a launched Chrome and its launcher.
type browserHandle struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// launchBrowser starts headless Chrome and connects to it.
// Rod downloads Chromium on first run unless ROD_BROWSER_BIN points at one.
func launchBrowser() (*browserHandle, error) {
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	return &browserHandle{browser: b, launcher: l}, nil
}

// Close shuts the browser down and reaps any renderer processes left behind.
func (h *browserHandle) Close() error {
	if h == nil {
		return nil
	}
	var err error
	if h.browser != nil {
		err = h.browser.Close()
		h.browser = nil
	}
	if h.launcher != nil {
		_ = process.KillTree(h.launcher.PID())
		h.launcher.Cleanup()
		h.launcher = nil
	}
	return err
}
