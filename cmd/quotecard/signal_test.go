package main

// Notes:
// - Real signal delivery is not exercised; only context wiring is.

import (
	"context"
	"os"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("live until stopped", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatalf("context canceled early: %v", ctx.Err())
		}
		stop()
		<-ctx.Done()
	})

	t.Run("parent cancellation propagates", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
		if ctx.Err() != context.Canceled {
			t.Errorf("Err() = %v, want context.Canceled", ctx.Err())
		}
	})
}

func TestShutdownSignals(t *testing.T) {
	t.Parallel()

	for _, s := range shutdownSignals {
		if s == os.Interrupt {
			return
		}
	}
	t.Error("shutdownSignals should include os.Interrupt")
}
