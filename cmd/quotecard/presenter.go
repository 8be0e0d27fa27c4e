package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/alnah/go-quotecard/internal/config"
	"github.com/alnah/go-quotecard/internal/toast"
)

// newPresenter returns a toast notifier that prints each shown message to
// stderr: green for success, red for failure. Quiet mode prints failures only.
func newPresenter(env *Environment, cfg *config.Config, quiet bool) *toast.Notifier {
	opts := []toast.Option{
		toast.WithClock(env.Clock),
		toast.OnShow(printToast(env.Stderr, env.NoColor, quiet)),
	}
	if d := cfg.ToastDuration(); d > 0 {
		opts = append(opts, toast.WithDelay(d))
	}
	return toast.New(opts...)
}

func printToast(w io.Writer, noColor, quiet bool) func(toast.Message) {
	success := color.New(color.FgGreen, color.Bold)
	failure := color.New(color.FgRed, color.Bold)
	if noColor {
		success.DisableColor()
		failure.DisableColor()
	}

	return func(m toast.Message) {
		switch m.Kind {
		case toast.KindFailure:
			fmt.Fprintln(w, failure.Sprint("✗ "+m.Text))
		default:
			if quiet {
				return
			}
			fmt.Fprintln(w, success.Sprint("✓ "+m.Text))
		}
	}
}
