package mock

import (
	"context"

	"github.com/fwojciec/lingua"
)

var (
	_ lingua.Browser = (*Browser)(nil)
	_ lingua.Session = (*Session)(nil)
)

// Browser is a mock implementation of lingua.Browser.
type Browser struct {
	NewSessionFn func(ctx context.Context) (lingua.Session, error)
	CloseFn      func() error
}

func (b *Browser) NewSession(ctx context.Context) (lingua.Session, error) {
	return b.NewSessionFn(ctx)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}

// Session is a mock implementation of lingua.Session.
type Session struct {
	NavigateFn func(ctx context.Context, url string) error
	HasFn      func(ctx context.Context, xpath string) (bool, error)
	HTMLFn     func(ctx context.Context) (string, error)
	ClickFn    func(ctx context.Context, xpath string) (bool, error)
	WaitIdleFn func(ctx context.Context) error
	CloseFn    func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) Has(ctx context.Context, xpath string) (bool, error) {
	return s.HasFn(ctx, xpath)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) Click(ctx context.Context, xpath string) (bool, error) {
	return s.ClickFn(ctx, xpath)
}

func (s *Session) WaitIdle(ctx context.Context) error {
	return s.WaitIdleFn(ctx)
}

func (s *Session) Close() error {
	return s.CloseFn()
}
