package client

import (
	"context"
	"time"
)

// Retry is the bounded fixed-delay retry policy used for best-effort reads
// feeding dashboards. Critical-path writes never retry; they surface
// ErrUnavailable to the caller instead.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

var DefaultRetry = Retry{Attempts: 3, Delay: 500 * time.Millisecond}

// Do runs fn up to r.Attempts times, sleeping r.Delay between attempts.
// It returns nil on the first success, the last error otherwise. Context
// cancellation cuts the loop short.
func (r Retry) Do(ctx context.Context, fn func() error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(r.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
