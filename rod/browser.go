package rod

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/lingua"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Browser and Session implement the lingua interfaces at compile time.
var (
	_ lingua.Browser = (*Browser)(nil)
	_ lingua.Session = (*Session)(nil)
)

// DefaultIdleWindow is how long the network must stay quiet after a
// click before the page counts as settled.
const DefaultIdleWindow = 500 * time.Millisecond

// Browser opens isolated Chrome sessions for crawl runs.
// Browser is safe for concurrent use.
type Browser struct {
	manager    *BrowserManager
	idleWindow time.Duration
}

// NewBrowser launches Chrome and returns a Browser over it.
// Close must be called when the Browser is no longer needed.
func NewBrowser(opts ...ManagerOption) (*Browser, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Browser{manager: manager, idleWindow: DefaultIdleWindow}, nil
}

// NewSession opens a page in its own incognito context, so sessions share
// no cookies, storage or navigation state.
func (b *Browser) NewSession(ctx context.Context) (lingua.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, release, err := b.manager.Acquire()
	if err != nil {
		return nil, err
	}

	incognito, err := browser.Incognito()
	if err != nil {
		release()
		return nil, lingua.Errorf(lingua.ENAVIGATION, "open browser context: %v", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Close()
		release()
		return nil, lingua.Errorf(lingua.ENAVIGATION, "open page: %v", err)
	}

	return &Session{
		page:       page,
		incognito:  incognito,
		release:    release,
		idleWindow: b.idleWindow,
	}, nil
}

// Close shuts down Chrome.
func (b *Browser) Close() error {
	return b.manager.Close()
}

// Session is one Chrome page in a private browser context.
type Session struct {
	page       *rod.Page
	incognito  *rod.Browser
	release    func()
	idleWindow time.Duration

	// waitIdle is armed by Click and consumed by WaitIdle.
	waitIdle func()

	closeOnce sync.Once
	closeErr  error
}

// Navigate loads url and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// Has reports whether xpath matches an element on the current page.
func (s *Session) Has(ctx context.Context, xpath string) (bool, error) {
	has, _, err := s.page.Context(ctx).HasX(xpath)
	return has, err
}

// HTML returns the rendered markup of the current page.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// Click clicks the first element matching xpath. Network activity from
// the click is tracked until WaitIdle is called.
func (s *Session) Click(ctx context.Context, xpath string) (bool, error) {
	p := s.page.Context(ctx)

	has, el, err := p.HasX(xpath)
	if err != nil || !has {
		return false, err
	}

	s.waitIdle = p.WaitRequestIdle(s.idleWindow, nil, nil, nil)
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		s.waitIdle = nil
		return false, err
	}
	return true, nil
}

// WaitIdle blocks until requests started by the last Click settle and
// the resulting document has loaded.
func (s *Session) WaitIdle(ctx context.Context) error {
	if s.waitIdle != nil {
		wait := s.waitIdle
		s.waitIdle = nil
		wait()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.page.Context(ctx).WaitLoad()
}

// Close closes the page and its browser context.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		defer s.release()
		if err := s.page.Close(); err != nil {
			s.closeErr = err
		}
		if err := s.incognito.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
	})
	return s.closeErr
}
