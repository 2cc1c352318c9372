package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/lingua"
	"golang.org/x/net/html"
)

const origin = "https://ml.wiktionary.org"

// fixtureSite serves static pages to sessions that evaluate XPath the
// way a browser would on the rendered DOM.
type fixtureSite struct {
	pages map[string]string

	mu        sync.Mutex
	clickErr  error
	active    int
	maxActive int
	opened    int
	closed    int
}

func newFixtureSite() *fixtureSite {
	return &fixtureSite{pages: make(map[string]string)}
}

// addSection registers a paginated section under key whose pages hold
// the given number of links each. It returns the start URL.
func (s *fixtureSite) addSection(key string, counts ...int) string {
	for i, n := range counts {
		links := make([]string, n)
		for j := range links {
			links[j] = linkPath(key, i+1, j+1)
		}
		next := ""
		if i < len(counts)-1 {
			next = sectionPageURL(key, i+2)
		}
		s.pages[sectionPageURL(key, i+1)] = sectionPage(links, next, next == "")
	}
	return sectionPageURL(key, 1)
}

// linkPath is the escaped path of the jth word link on a section page.
func linkPath(key string, page, j int) string {
	return fmt.Sprintf("/wiki/%s-%d-%d", url.PathEscape(key), page, j)
}

func (s *fixtureSite) failClicks(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clickErr = err
}

func sectionPageURL(key string, page int) string {
	return fmt.Sprintf("%s/wiki/section-%s-%d", origin, url.PathEscape(key), page)
}

// sectionPage renders a listing page. Full pages carry an extra wrapper
// before the link list and a pager after it; lean pages do not.
func sectionPage(links []string, next string, lean bool) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="mw-content-text"><div>intro</div>`)
	if !lean {
		b.WriteString(`<div>pager</div>`)
	}
	b.WriteString(`<div><ul>`)
	for _, l := range links {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, l, l)
	}
	b.WriteString(`</ul></div>`)
	if next != "" {
		fmt.Fprintf(&b, `<div><a href="%s">next page</a></div>`, next)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func (s *fixtureSite) NewSession(ctx context.Context) (lingua.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened++
	s.active++
	if s.active > s.maxActive {
		s.maxActive = s.active
	}
	return &fixtureSession{site: s}, nil
}

func (s *fixtureSite) Close() error { return nil }

func (s *fixtureSite) stats() (opened, closed, maxActive int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened, s.closed, s.maxActive
}

type fixtureSession struct {
	site    *fixtureSite
	current string
	doc     *html.Node
	closed  bool
}

func (s *fixtureSession) Navigate(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	page, ok := s.site.pages[rawURL]
	if !ok {
		return fmt.Errorf("net::ERR_HTTP_RESPONSE_CODE_FAILURE: 404 %s", rawURL)
	}
	doc, err := htmlquery.Parse(strings.NewReader(page))
	if err != nil {
		return err
	}
	s.current, s.doc = rawURL, doc
	return nil
}

func (s *fixtureSession) Has(ctx context.Context, xpath string) (bool, error) {
	if s.doc == nil {
		return false, nil
	}
	nodes, err := htmlquery.QueryAll(s.doc, xpath)
	if err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

func (s *fixtureSession) HTML(ctx context.Context) (string, error) {
	if s.doc == nil {
		return "", errors.New("no page loaded")
	}
	return htmlquery.OutputHTML(s.doc, true), nil
}

func (s *fixtureSession) Click(ctx context.Context, xpath string) (bool, error) {
	s.site.mu.Lock()
	clickErr := s.site.clickErr
	s.site.mu.Unlock()
	if clickErr != nil {
		return false, clickErr
	}

	node, err := htmlquery.Query(s.doc, xpath)
	if err != nil {
		return false, err
	}
	if node == nil {
		return false, nil
	}
	base, err := url.Parse(s.current)
	if err != nil {
		return false, err
	}
	ref, err := url.Parse(htmlquery.SelectAttr(node, "href"))
	if err != nil {
		return false, err
	}
	return true, s.Navigate(ctx, base.ResolveReference(ref).String())
}

func (s *fixtureSession) WaitIdle(ctx context.Context) error { return ctx.Err() }

func (s *fixtureSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.site.mu.Lock()
	defer s.site.mu.Unlock()
	s.site.active--
	s.site.closed++
	return nil
}

// failingStore fails the nth AddLink call and delegates the rest.
type failingStore struct {
	next   lingua.WordStore
	failAt int

	mu    sync.Mutex
	calls int
}

func (s *failingStore) AddLink(ctx context.Context, alphabet, url string) (string, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	if n == s.failAt {
		return "", errors.New("database is locked")
	}
	return s.next.AddLink(ctx, alphabet, url)
}

func requireSessionsClosed(t *testing.T, site *fixtureSite) {
	t.Helper()
	opened, closed, _ := site.stats()
	if opened != closed {
		t.Fatalf("sessions opened %d, closed %d", opened, closed)
	}
}
