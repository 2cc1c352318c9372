package lingua

import "context"

// Fetcher retrieves HTML from word entry URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
