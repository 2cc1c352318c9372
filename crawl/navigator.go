package crawl

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/lingua"
)

// Default waits for region locators.
const (
	DefaultRegionTimeout = 10 * time.Second
	DefaultPollInterval  = 200 * time.Millisecond
)

// NavigatorOptions configures a Navigator. Zero fields take defaults.
type NavigatorOptions struct {
	// Regions are tried in order; the first that resolves wins.
	Regions []lingua.Locator

	// NextPage locates the control that loads the following page.
	NextPage lingua.Locator

	RegionTimeout time.Duration
	PollInterval  time.Duration

	// Limiter, if set, throttles every navigation per host.
	Limiter lingua.DomainLimiter
}

func (o NavigatorOptions) withDefaults() NavigatorOptions {
	if len(o.Regions) == 0 {
		o.Regions = lingua.DefaultRegionLocators()
	}
	if o.NextPage.XPath == "" {
		o.NextPage = lingua.NextPage
	}
	if o.RegionTimeout <= 0 {
		o.RegionTimeout = DefaultRegionTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Navigator drives one session through a paginated letter section.
// It is owned by a single run and not safe for concurrent use.
type Navigator struct {
	session lingua.Session
	opts    NavigatorOptions
	host    string
}

// NewNavigator creates a Navigator over session.
func NewNavigator(session lingua.Session, opts NavigatorOptions) *Navigator {
	return &Navigator{session: session, opts: opts.withDefaults()}
}

// Open loads startURL and waits until one of the region locators
// resolves. Returns ENAVIGATION if none does within the region timeout.
func (n *Navigator) Open(ctx context.Context, startURL string) error {
	u, err := url.Parse(startURL)
	if err != nil || u.Host == "" {
		return lingua.Errorf(lingua.EINVALID, "invalid start URL %q", startURL)
	}
	n.host = u.Host

	if err := n.throttle(ctx); err != nil {
		return err
	}
	if err := n.session.Navigate(ctx, startURL); err != nil {
		return navigationError(ctx, err, "navigate to "+startURL)
	}
	_, err = n.waitForRegion(ctx)
	return err
}

// ExtractCurrentRegion returns the first region strategy that resolves
// on the current page together with the page markup. Returns EEXTRACT if
// no strategy resolves.
func (n *Navigator) ExtractCurrentRegion(ctx context.Context) (lingua.Region, error) {
	loc, ok, err := SelectRegion(ctx, n.session, n.opts.Regions)
	if err != nil {
		return lingua.Region{}, navigationError(ctx, err, "probe regions")
	}
	if !ok {
		return lingua.Region{}, lingua.Errorf(lingua.EEXTRACT, "no region locator matched")
	}

	markup, err := n.session.HTML(ctx)
	if err != nil {
		return lingua.Region{}, navigationError(ctx, err, "read page markup")
	}
	return lingua.Region{Locator: loc, Markup: markup}, nil
}

// Advance follows the next-page control. It returns false when the
// current page has none, which ends the section.
func (n *Navigator) Advance(ctx context.Context) (bool, error) {
	has, err := n.session.Has(ctx, n.opts.NextPage.XPath)
	if err != nil {
		return false, navigationError(ctx, err, "probe next page")
	}
	if !has {
		return false, nil
	}

	if err := n.throttle(ctx); err != nil {
		return false, err
	}

	clicked, err := n.session.Click(ctx, n.opts.NextPage.XPath)
	if err != nil {
		return false, navigationError(ctx, err, "click next page")
	}
	if !clicked {
		return false, nil
	}

	if err := n.session.WaitIdle(ctx); err != nil {
		return false, navigationError(ctx, err, "wait for next page")
	}
	if _, err := n.waitForRegion(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the session.
func (n *Navigator) Close() error {
	return n.session.Close()
}

// waitForRegion polls the region locators until one resolves. Probe
// errors count as "not yet" while the page settles.
func (n *Navigator) waitForRegion(ctx context.Context) (lingua.Locator, error) {
	var found lingua.Locator
	err := poll(ctx, n.opts.RegionTimeout, n.opts.PollInterval, func() bool {
		loc, ok, err := SelectRegion(ctx, n.session, n.opts.Regions)
		if err == nil && ok {
			found = loc
			return true
		}
		return false
	})
	if err == errPollTimeout {
		return lingua.Locator{}, lingua.Errorf(lingua.ENAVIGATION,
			"no region locator resolved within %s", n.opts.RegionTimeout)
	}
	return found, err
}

func (n *Navigator) throttle(ctx context.Context) error {
	if n.opts.Limiter == nil {
		return nil
	}
	return n.opts.Limiter.Wait(ctx, n.host)
}

// SelectRegion evaluates locators in order and returns the first that
// matches on the session's current page. Later locators are not probed
// once one matches.
func SelectRegion(ctx context.Context, session lingua.Session, locators []lingua.Locator) (lingua.Locator, bool, error) {
	for _, loc := range locators {
		ok, err := session.Has(ctx, loc.XPath)
		if err != nil {
			return lingua.Locator{}, false, err
		}
		if ok {
			return loc, true, nil
		}
	}
	return lingua.Locator{}, false, nil
}

var errPollTimeout = errors.New("poll timeout")

// poll calls cond every interval until it returns true, the context ends,
// or timeout elapses.
func poll(ctx context.Context, timeout, interval time.Duration, cond func() bool) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if cond() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return errPollTimeout
		case <-ticker.C:
		}
	}
}

// navigationError classifies a session failure. Cancellation passes
// through as the context error.
func navigationError(ctx context.Context, err error, what string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if lingua.ErrorCode(err) != lingua.EINTERNAL {
		return err
	}
	return lingua.Errorf(lingua.ENAVIGATION, "%s: %v", what, err)
}
