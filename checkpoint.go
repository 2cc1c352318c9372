package lingua

import "context"

// Checkpoint holds the ordered URLs already handed to the word store
// for one grouping key. A Checkpoint is owned by a single run and is
// not safe for concurrent use.
type Checkpoint struct {
	Key  string
	URLs []string

	seen map[string]struct{}
}

// NewCheckpoint returns a checkpoint for key holding urls in order.
func NewCheckpoint(key string, urls ...string) *Checkpoint {
	cp := &Checkpoint{
		Key:  key,
		seen: make(map[string]struct{}, len(urls)),
	}
	for _, u := range urls {
		cp.Add(u)
	}
	return cp
}

// Has reports whether url has been processed.
func (c *Checkpoint) Has(url string) bool {
	_, ok := c.seen[url]
	return ok
}

// Add records url as processed. Adding a URL twice is a no-op.
func (c *Checkpoint) Add(url string) {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[url]; ok {
		return
	}
	c.seen[url] = struct{}{}
	c.URLs = append(c.URLs, url)
}

// Len returns the number of processed URLs.
func (c *Checkpoint) Len() int {
	return len(c.URLs)
}

// Last returns the most recently processed URL.
// The bool result is false if the checkpoint is empty.
func (c *Checkpoint) Last() (string, bool) {
	if len(c.URLs) == 0 {
		return "", false
	}
	return c.URLs[len(c.URLs)-1], true
}

// CheckpointTracker persists which URLs a grouping key's run has already
// processed, so a restarted run resumes without duplicating records.
type CheckpointTracker interface {
	// Load returns the processed URLs for key.
	// Returns an empty checkpoint if no record exists.
	Load(ctx context.Context, key string) (*Checkpoint, error)

	// MarkProcessed durably appends url to the record for key.
	// Callers skip URLs already present in the loaded checkpoint;
	// the tracker does not deduplicate.
	MarkProcessed(ctx context.Context, key, url string) error

	// MarkComplete removes the record for key once its run has visited
	// every page. Removing a missing record is not an error.
	MarkComplete(ctx context.Context, key string) error
}
