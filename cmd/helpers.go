package main

import (
	"context"
	"time"
)

// timeoutContext returns a context detached from command cancellation,
// used for graceful shutdown after the parent context is already done.
func timeoutContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
