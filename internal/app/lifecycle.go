package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownSignals cancel a running evaluation or calibration.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// CancelFuncs holds the cancel functions created by SetupLifecycle.
type CancelFuncs struct {
	// CancelTimeout releases the deadline timer.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup releases both resources. It is safe to call on a partially
// populated value.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}

// SetupLifecycle derives a context that is canceled when timeout elapses or
// when SIGINT or SIGTERM is received, whichever comes first. A non-positive
// timeout leaves the context without a deadline.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration for the operation.
//
// Returns:
//   - context.Context: The derived context.
//   - *CancelFuncs: The cleanup handles, to be released with defer.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	c := &CancelFuncs{}
	if timeout > 0 {
		ctx, c.CancelTimeout = context.WithTimeout(ctx, timeout)
	}
	ctx, c.StopSignals = signal.NotifyContext(ctx, shutdownSignals...)
	return ctx, c
}
