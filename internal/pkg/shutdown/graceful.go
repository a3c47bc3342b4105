package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// OnSignal runs fn once when SIGINT or SIGTERM arrives, then cancels the
// returned context. Calling the CancelFunc stops listening.
func OnSignal(ctx context.Context, fn func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			if fn != nil {
				fn(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
