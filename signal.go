package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownContext returns a context that cancels on the first SIGINT/SIGTERM
// and force-exits on the second. The first signal lets an in-flight request
// unwind through context cancellation; the second covers a hung transfer.
func shutdownContext(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
			statusf("\nInterrupted — press Ctrl-C again to force quit\n")
			cancel()
		case <-ctx.Done():
			return
		}

		// Wait for second signal — force exit.
		select {
		case <-sigCh:
			os.Exit(1)
		case <-parent.Done():
			return
		}
	}()

	return ctx
}
