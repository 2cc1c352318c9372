package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lingua"
)

// AlphabetDiscoverer records the letter sections listed on the
// dictionary index page.
type AlphabetDiscoverer struct {
	Browser   lingua.Browser
	Extractor lingua.AlphabetExtractor
	Alphabets lingua.AlphabetService
	Logger    *slog.Logger

	// ReadyTimeout bounds the wait for the index to render.
	ReadyTimeout time.Duration
	PollInterval time.Duration
}

// DiscoverResult holds the outcome of alphabet discovery.
type DiscoverResult struct {
	// Skipped is set when a complete alphabet list was already stored.
	Skipped bool

	// Deleted is the number of stale alphabets soft-deleted.
	Deleted int

	Alphabets []*lingua.Alphabet
}

// Discover loads the index page at indexURL and stores its letter
// sections. Discovery is skipped when at least lingua.MinAlphabets
// alphabets are already stored, unless force is set. Otherwise existing
// alphabets and their words are soft-deleted before the new list is
// stored; alphabets found again are restored.
func (d *AlphabetDiscoverer) Discover(ctx context.Context, indexURL string, force bool) (*DiscoverResult, error) {
	logger := d.logger()

	existing, err := d.Alphabets.FindAlphabets(ctx, lingua.AlphabetFilter{})
	if err != nil {
		return nil, err
	}
	if !force && len(existing) >= lingua.MinAlphabets {
		logger.Info("alphabets already discovered", "count", len(existing))
		return &DiscoverResult{Skipped: true, Alphabets: existing}, nil
	}

	markup, err := d.loadIndex(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	alphabets, err := d.Extractor.ExtractAlphabets(markup)
	if err != nil {
		return nil, err
	}
	if len(alphabets) == 0 {
		return nil, lingua.Errorf(lingua.EEXTRACT, "no alphabets found on %s", indexURL)
	}

	result := &DiscoverResult{Alphabets: alphabets}
	if len(existing) > 0 {
		if result.Deleted, err = d.Alphabets.SoftDeleteAlphabets(ctx); err != nil {
			return nil, err
		}
		logger.Info("stale alphabets deleted", "count", result.Deleted)
	}

	for _, a := range alphabets {
		if err := d.Alphabets.UpsertAlphabet(ctx, a); err != nil {
			return nil, err
		}
	}

	logger.Info("alphabets discovered", "count", len(alphabets))
	return result, nil
}

func (d *AlphabetDiscoverer) loadIndex(ctx context.Context, indexURL string) (string, error) {
	session, err := d.Browser.NewSession(ctx)
	if err != nil {
		return "", err
	}
	defer session.Close()

	if err := session.Navigate(ctx, indexURL); err != nil {
		return "", navigationError(ctx, err, "navigate to "+indexURL)
	}

	timeout := d.ReadyTimeout
	if timeout <= 0 {
		timeout = DefaultRegionTimeout
	}
	interval := d.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	err = poll(ctx, timeout, interval, func() bool {
		ok, err := session.Has(ctx, lingua.IndexReady.XPath)
		return err == nil && ok
	})
	if err == errPollTimeout {
		return "", lingua.Errorf(lingua.ENAVIGATION, "index page did not render within %s", timeout)
	}
	if err != nil {
		return "", err
	}

	markup, err := session.HTML(ctx)
	if err != nil {
		return "", navigationError(ctx, err, "read index markup")
	}
	return markup, nil
}

func (d *AlphabetDiscoverer) logger() *slog.Logger {
	if d.Logger == nil {
		return discardLogger()
	}
	return d.Logger
}
