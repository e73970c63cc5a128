package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Signals are the termination signals watched by WithSignals.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WithSignals returns a copy of parent canceled on the first termination
// signal or when cancel is called. Once the context is done the default
// signal behavior is restored.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return withSignals(parent, Signals...)
}

func withSignals(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			cancel(&SignalError{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}

// SignalError is the cancellation cause recorded when a signal arrives.
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return "received " + e.Signal.String()
}

// Signaled reports the signal that canceled ctx, if any.
func Signaled(ctx context.Context) (os.Signal, bool) {
	if se, ok := context.Cause(ctx).(*SignalError); ok {
		return se.Signal, true
	}
	return nil, false
}
