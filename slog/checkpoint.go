package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lingua"
)

// Ensure LoggingCheckpointTracker implements lingua.CheckpointTracker.
var _ lingua.CheckpointTracker = (*LoggingCheckpointTracker)(nil)

// LoggingCheckpointTracker wraps a CheckpointTracker with logging.
type LoggingCheckpointTracker struct {
	next   lingua.CheckpointTracker
	logger *slog.Logger
}

// NewLoggingCheckpointTracker creates a new LoggingCheckpointTracker.
func NewLoggingCheckpointTracker(next lingua.CheckpointTracker, logger *slog.Logger) *LoggingCheckpointTracker {
	return &LoggingCheckpointTracker{next: next, logger: logger}
}

// Load delegates to the wrapped tracker and logs how many URLs were recovered.
func (t *LoggingCheckpointTracker) Load(ctx context.Context, key string) (cp *lingua.Checkpoint, err error) {
	defer func(begin time.Time) {
		n := 0
		if cp != nil {
			n = cp.Len()
		}
		t.logger.Info("checkpoint load",
			"key", key,
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Load(ctx, key)
}

// MarkProcessed delegates to the wrapped tracker.
func (t *LoggingCheckpointTracker) MarkProcessed(ctx context.Context, key, url string) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		t.logger.Log(ctx, level, "checkpoint append",
			"key", key,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.MarkProcessed(ctx, key, url)
}

// MarkComplete delegates to the wrapped tracker.
func (t *LoggingCheckpointTracker) MarkComplete(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		t.logger.Info("checkpoint complete",
			"key", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.MarkComplete(ctx, key)
}
