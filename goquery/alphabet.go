// Package goquery implements lingua extractors with CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lingua"
)

// Ensure AlphabetExtractor implements lingua.AlphabetExtractor at compile time.
var _ lingua.AlphabetExtractor = (*AlphabetExtractor)(nil)

// DefaultIndexSelector matches the letter links on the contents page.
const DefaultIndexSelector = "#mwBw a[href]"

// AlphabetExtractor extracts letter sections from the dictionary index.
type AlphabetExtractor struct {
	baseURL  string
	selector string
}

// NewAlphabetExtractor creates an AlphabetExtractor resolving links against baseURL.
func NewAlphabetExtractor(baseURL string) *AlphabetExtractor {
	return &AlphabetExtractor{
		baseURL:  baseURL,
		selector: DefaultIndexSelector,
	}
}

// ExtractAlphabets parses the index page and returns one alphabet per
// distinct letter, in page order.
func (e *AlphabetExtractor) ExtractAlphabets(html string) ([]*lingua.Alphabet, error) {
	base, err := url.Parse(e.baseURL)
	if err != nil {
		return nil, lingua.Errorf(lingua.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, lingua.Errorf(lingua.EEXTRACT, "failed to parse HTML: %v", err)
	}

	var alphabets []*lingua.Alphabet
	seen := make(map[string]bool)

	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}

		resolved := resolveURL(base, strings.TrimSpace(href))
		if resolved == "" {
			return
		}

		letter := lingua.GroupingKey(resolved)
		if letter == "" || seen[letter] {
			return
		}
		seen[letter] = true

		alphabets = append(alphabets, &lingua.Alphabet{
			Letter: letter,
			URL:    resolved,
		})
	})

	return alphabets, nil
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
