// Package fs provides file-based storage for crawl checkpoints and
// dataset exports.
package fs

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/lingua"
)

// Ensure CheckpointTracker implements lingua.CheckpointTracker at compile time.
var _ lingua.CheckpointTracker = (*CheckpointTracker)(nil)

// CheckpointTracker keeps one append-only file per grouping key, one URL
// per line. Runs for different keys never touch the same file, so the
// tracker is safe for concurrent use across keys.
type CheckpointTracker struct {
	dir string
}

// NewCheckpointTracker creates a CheckpointTracker storing records in dir.
// The directory is created on first write.
func NewCheckpointTracker(dir string) *CheckpointTracker {
	return &CheckpointTracker{dir: dir}
}

// Path returns the record file for key.
func (t *CheckpointTracker) Path(key string) string {
	return filepath.Join(t.dir, "checkpoint_"+url.PathEscape(key)+".txt")
}

// Load returns the URLs recorded for key. A trailing line without a
// newline is the remains of an interrupted append; it is ignored and cut
// from the file so the next append starts on a fresh line.
func (t *CheckpointTracker) Load(ctx context.Context, key string) (*lingua.Checkpoint, error) {
	if key == "" {
		return nil, lingua.Errorf(lingua.EINVALID, "checkpoint key required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := t.Path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return lingua.NewCheckpoint(key), nil
	}
	if err != nil {
		return nil, lingua.Errorf(lingua.ECHECKPOINT, "read checkpoint for %q: %v", key, err)
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		end := bytes.LastIndexByte(data, '\n') + 1
		if err := os.Truncate(path, int64(end)); err != nil {
			return nil, lingua.Errorf(lingua.ECHECKPOINT, "truncate checkpoint for %q: %v", key, err)
		}
		data = data[:end]
	}

	lines := strings.Split(string(data), "\n")
	lines = lines[:len(lines)-1]

	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return lingua.NewCheckpoint(key, urls...), nil
}

// MarkProcessed appends url to the record for key and syncs it to disk
// before returning.
func (t *CheckpointTracker) MarkProcessed(ctx context.Context, key, url string) error {
	if key == "" {
		return lingua.Errorf(lingua.EINVALID, "checkpoint key required")
	}
	if url == "" || strings.ContainsAny(url, "\r\n") {
		return lingua.Errorf(lingua.EINVALID, "checkpoint URL must be a single non-empty line")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(t.dir, 0755); err != nil {
		return lingua.Errorf(lingua.ECHECKPOINT, "create checkpoint dir: %v", err)
	}

	f, err := os.OpenFile(t.Path(key), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return lingua.Errorf(lingua.ECHECKPOINT, "open checkpoint for %q: %v", key, err)
	}

	if _, err := f.WriteString(url + "\n"); err != nil {
		f.Close()
		return lingua.Errorf(lingua.ECHECKPOINT, "append checkpoint for %q: %v", key, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return lingua.Errorf(lingua.ECHECKPOINT, "sync checkpoint for %q: %v", key, err)
	}
	if err := f.Close(); err != nil {
		return lingua.Errorf(lingua.ECHECKPOINT, "close checkpoint for %q: %v", key, err)
	}
	return nil
}

// MarkComplete removes the record for key.
func (t *CheckpointTracker) MarkComplete(ctx context.Context, key string) error {
	if key == "" {
		return lingua.Errorf(lingua.EINVALID, "checkpoint key required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(t.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return lingua.Errorf(lingua.ECHECKPOINT, "remove checkpoint for %q: %v", key, err)
	}
	return nil
}

// Exists reports whether a record exists for key.
func (t *CheckpointTracker) Exists(key string) bool {
	_, err := os.Stat(t.Path(key))
	return err == nil
}
