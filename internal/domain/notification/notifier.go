package notification

import (
	"context"
	"log/slog"
)

// Notifier signals dependent views and consumers to refresh after a
// successful mutation. Implementations must not affect the outcome of the
// mutation; core correctness never depends on a hook succeeding.
type Notifier interface {
	Revalidate(ctx context.Context, topic, recordID string)
}

// LogNotifier is the default hook: it only logs the revalidation signal.
type LogNotifier struct{}

func (LogNotifier) Revalidate(ctx context.Context, topic, recordID string) {
	slog.DebugContext(ctx, "revalidation signal", "topic", topic, "record_id", recordID)
}
