package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lingua"
)

// Ensure LoggingWordStore implements lingua.WordStore.
var _ lingua.WordStore = (*LoggingWordStore)(nil)

// LoggingWordStore wraps a WordStore with debug logging of every insert.
type LoggingWordStore struct {
	next   lingua.WordStore
	logger *slog.Logger
}

// NewLoggingWordStore creates a new LoggingWordStore.
func NewLoggingWordStore(next lingua.WordStore, logger *slog.Logger) *LoggingWordStore {
	return &LoggingWordStore{next: next, logger: logger}
}

// AddLink delegates to the wrapped store and logs the operation.
func (s *LoggingWordStore) AddLink(ctx context.Context, alphabet, url string) (id string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "add link",
			"alphabet", alphabet,
			"url", url,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AddLink(ctx, alphabet, url)
}
