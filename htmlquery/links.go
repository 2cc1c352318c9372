package htmlquery

import (
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/lingua"
)

// Ensure LinkExtractor implements lingua.LinkExtractor at compile time.
var _ lingua.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts anchor targets from an XPath-located region.
// It performs no I/O and is safe for concurrent use.
type LinkExtractor struct {
	base *url.URL
	err  error
}

// NewLinkExtractor creates a LinkExtractor resolving relative targets
// against baseOrigin.
func NewLinkExtractor(baseOrigin string) *LinkExtractor {
	base, err := url.Parse(baseOrigin)
	if err == nil && !base.IsAbs() {
		err = lingua.Errorf(lingua.EINVALID, "base origin %q is not absolute", baseOrigin)
	}
	return &LinkExtractor{base: base, err: err}
}

// Extract returns the absolute targets of all anchors inside region.
func (e *LinkExtractor) Extract(markup string, region lingua.Locator) ([]string, error) {
	if e.err != nil {
		return nil, lingua.Errorf(lingua.EINVALID, "invalid base origin: %v", e.err)
	}

	doc, err := parse(markup)
	if err != nil {
		return nil, err
	}

	container, err := queryOne(doc, region.XPath)
	if err != nil {
		return nil, err
	}
	if container == nil {
		return nil, lingua.Errorf(lingua.EEXTRACT, "region %q not found in page", region.Name)
	}

	anchors, err := queryAll(container, ".//a")
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(anchors))
	for _, a := range anchors {
		href := strings.TrimSpace(htmlquery.SelectAttr(a, "href"))
		if href == "" {
			continue
		}
		if resolved := resolveURL(e.base, href); resolved != "" {
			links = append(links, resolved)
		}
	}
	return links, nil
}
