package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/lingua"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements lingua.Fetcher at compile time.
var _ lingua.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	timeout     time.Duration
	managerOpts []ManagerOption
}

// WithFetchTimeout sets the per-fetch timeout. Defaults to 30s.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithBrowserOptions passes options to the underlying BrowserManager.
func WithBrowserOptions(opts ...ManagerOption) FetcherOption {
	return func(c *fetcherConfig) {
		c.managerOpts = append(c.managerOpts, opts...)
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := &fetcherConfig{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(cfg)
	}

	manager, err := NewBrowserManager(cfg.managerOpts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager, timeout: cfg.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, release, err := f.manager.Acquire()
	if errors.Is(err, ErrManagerClosed) {
		return "", lingua.Errorf(lingua.EINVALID, "fetcher closed")
	}
	if err != nil {
		return "", err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// Active reports how many fetches currently hold a browser page.
func (f *Fetcher) Active() int {
	return f.manager.Active()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
