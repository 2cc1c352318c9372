// Package htmlquery implements lingua extractors with XPath queries over
// parsed HTML.
package htmlquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/lingua"
	"golang.org/x/net/html"
)

// parse parses markup into a document tree.
func parse(markup string) (*html.Node, error) {
	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, lingua.Errorf(lingua.EEXTRACT, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// queryAll runs expr relative to top, reporting malformed expressions
// as EINVALID.
func queryAll(top *html.Node, expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		return nil, lingua.Errorf(lingua.EINVALID, "invalid xpath %q: %v", expr, err)
	}
	return nodes, nil
}

// queryOne returns the first match of expr relative to top, or nil.
func queryOne(top *html.Node, expr string) (*html.Node, error) {
	node, err := htmlquery.Query(top, expr)
	if err != nil {
		return nil, lingua.Errorf(lingua.EINVALID, "invalid xpath %q: %v", expr, err)
	}
	return node, nil
}

// normalizeSpace mirrors XPath normalize-space(): trims and collapses runs
// of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// literal quotes s as an XPath string literal. XPath 1.0 has no escape
// syntax, so strings holding both quote kinds are built with concat().
func literal(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return fmt.Sprintf("concat(%s)", strings.Join(quoted, ", "))
}

// resolveURL resolves href against base, returning "" if href is unparseable.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
