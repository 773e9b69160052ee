package nodes

import (
	"context"
	"time"
)

const DefaultStageTimeout = 30 * time.Second

// normalizeStageTimeout returns a sane default when the provided value is invalid.
func normalizeStageTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultStageTimeout
	}
	return d
}

// withStageTimeout bounds one completion call; expiry surfaces as a completion failure.
func withStageTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, normalizeStageTimeout(d))
}
