package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	quotecard "github.com/alnah/go-quotecard"
)

// Exporter runs card exports. *quotecard.Controller satisfies it.
type Exporter interface {
	Export(ctx context.Context, ch quotecard.Channel) (quotecard.Outcome, bool)
	Close() error
}

// ExporterFactory builds an Exporter for a session.
type ExporterFactory func(session *quotecard.Session, opts ...quotecard.Option) (Exporter, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment lookup, and the export backend.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	Clock       clockwork.Clock // Drives toast dismissal
	NoColor     bool
	NewExporter ExporterFactory
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		Clock:       clockwork.NewRealClock(),
		NoColor:     os.Getenv("NO_COLOR") != "",
		NewExporter: newControllerExporter,
	}
}

func newControllerExporter(session *quotecard.Session, opts ...quotecard.Option) (Exporter, error) {
	return quotecard.NewController(session, opts...)
}

// Compile-time interface check.
var _ Exporter = (*quotecard.Controller)(nil)
