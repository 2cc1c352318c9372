package lingua

import (
	"net/url"
	"path"
)

// BaseOrigin is the origin relative links are resolved against.
const BaseOrigin = "https://ml.wiktionary.org"

// IndexURL is the Wiktionary contents page listing one section per letter.
const IndexURL = BaseOrigin + "/wiki/%E0%B4%B5%E0%B4%BF%E0%B4%95%E0%B5%8D%E0%B4%95%E0%B4%BF%E0%B4%A8%E0%B4%BF%E0%B4%98%E0%B4%A3%E0%B5%8D%E0%B4%9F%E0%B5%81:%E0%B4%89%E0%B4%B3%E0%B5%8D%E0%B4%B3%E0%B4%9F%E0%B4%95%E0%B5%8D%E0%B4%95%E0%B4%82"

// Locator is a named XPath strategy for finding part of a page.
type Locator struct {
	Name  string
	XPath string
}

// Region is the rendered markup of a page together with the locator
// that identified its content region.
type Region struct {
	Locator Locator
	Markup  string
}

// Page locators for the Wiktionary templates.
var (
	// FullRegion matches the word list on every page of a section but the last.
	FullRegion = Locator{Name: "full", XPath: `//*[@id="mw-content-text"]/div[3]`}

	// LeanRegion matches the word list on the final page of a section,
	// which has fewer structural wrappers.
	LeanRegion = Locator{Name: "lean", XPath: `//*[@id="mw-content-text"]/div[2]`}

	// NextPage matches the "next page" control of a section.
	NextPage = Locator{Name: "next", XPath: `//*[@id="mw-content-text"]/div[4]//a`}

	// IndexReady appears once the contents page has rendered.
	IndexReady = Locator{Name: "index", XPath: `//*[@id="mwCA"]`}

	// WordContent holds the entry body of a word page.
	WordContent = Locator{Name: "word", XPath: `//*[@id="mw-content-text"]/div[1]`}
)

// DefaultRegionLocators returns the content region strategies in the
// order they are tried.
func DefaultRegionLocators() []Locator {
	return []Locator{FullRegion, LeanRegion}
}

// GroupingKey derives a grouping key from a section or word URL:
// the unescaped final path segment.
func GroupingKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	seg := path.Base(u.EscapedPath())
	if seg == "." || seg == "/" {
		return ""
	}
	if s, err := url.PathUnescape(seg); err == nil {
		return s
	}
	return seg
}
