package lingua

import "context"

// Browser opens isolated browser automation sessions.
// Implementations must be safe for concurrent use.
type Browser interface {
	// NewSession opens a session that shares no page state with other sessions.
	NewSession(ctx context.Context) (Session, error)

	// Close releases browser resources.
	Close() error
}

// Session is a single browser page driven by one run.
// A Session is not safe for concurrent use.
type Session interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// Has reports whether the XPath expression matches an element
	// on the current page.
	Has(ctx context.Context, xpath string) (bool, error)

	// HTML returns the rendered markup of the current page.
	HTML(ctx context.Context) (string, error)

	// Click activates the first element matching xpath.
	// Returns false without error if nothing matches.
	Click(ctx context.Context, xpath string) (bool, error)

	// WaitIdle blocks until network activity triggered by the last
	// Click has settled.
	WaitIdle(ctx context.Context) error

	// Close releases the page. Close is safe to call multiple times.
	Close() error
}
