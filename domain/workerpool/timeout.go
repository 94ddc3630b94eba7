package workerpool

import (
	"context"
	"time"
)

// JobTimeout bounds the duration of a single job. Zero means unbounded.
type JobTimeout time.Duration

func (t JobTimeout) apply(ctx context.Context) (context.Context, context.CancelFunc) {
	if t <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(t))
}
