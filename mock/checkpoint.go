package mock

import (
	"context"

	"github.com/fwojciec/lingua"
)

var _ lingua.CheckpointTracker = (*CheckpointTracker)(nil)

// CheckpointTracker is a mock implementation of lingua.CheckpointTracker.
type CheckpointTracker struct {
	LoadFn          func(ctx context.Context, key string) (*lingua.Checkpoint, error)
	MarkProcessedFn func(ctx context.Context, key, url string) error
	MarkCompleteFn  func(ctx context.Context, key string) error
}

func (t *CheckpointTracker) Load(ctx context.Context, key string) (*lingua.Checkpoint, error) {
	return t.LoadFn(ctx, key)
}

func (t *CheckpointTracker) MarkProcessed(ctx context.Context, key, url string) error {
	return t.MarkProcessedFn(ctx, key, url)
}

func (t *CheckpointTracker) MarkComplete(ctx context.Context, key string) error {
	return t.MarkCompleteFn(ctx, key)
}
