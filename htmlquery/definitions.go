package htmlquery

import (
	"fmt"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/lingua"
	"golang.org/x/net/html"
)

// Ensure DefinitionExtractor implements lingua.DefinitionExtractor at compile time.
var _ lingua.DefinitionExtractor = (*DefinitionExtractor)(nil)

// DefinitionExtractor reads definitions from a Wiktionary entry page.
//
// An entry marks the headword in bold; its senses are the items of the
// lists that follow the paragraph holding that bold text. When no such
// list exists, the first list after the bold text is used instead.
type DefinitionExtractor struct {
	content lingua.Locator
}

// NewDefinitionExtractor creates a new DefinitionExtractor.
func NewDefinitionExtractor() *DefinitionExtractor {
	return &DefinitionExtractor{content: lingua.WordContent}
}

// ExtractDefinitions returns the definitions of word found in markup.
func (e *DefinitionExtractor) ExtractDefinitions(markup string, word string) ([]string, error) {
	if word == "" {
		return nil, lingua.Errorf(lingua.EINVALID, "word required")
	}

	doc, err := parse(markup)
	if err != nil {
		return nil, err
	}

	content, err := queryOne(doc, e.content.XPath)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, lingua.Errorf(lingua.EEXTRACT, "entry content not found")
	}

	bolds, err := queryAll(content, fmt.Sprintf(".//b[normalize-space(text())=%s]", literal(word)))
	if err != nil {
		return nil, err
	}

	var defs []string
	for _, b := range bolds {
		block, err := queryOne(b, "./ancestor::*[self::p or self::div][1]")
		if err != nil {
			return nil, err
		}
		if block != nil {
			items, err := queryAll(block, "./following-sibling::*[self::ul or self::ol]/li")
			if err != nil {
				return nil, err
			}
			defs = appendItems(defs, items)
		}

		if len(defs) == 0 {
			items, err := queryAll(b, "./following::*[self::ul or self::ol][1]/li")
			if err != nil {
				return nil, err
			}
			defs = appendItems(defs, items)
		}
	}

	return unique(defs), nil
}

// unique drops repeated definitions, which occur when the headword is
// bolded more than once in the same block.
func unique(defs []string) []string {
	seen := make(map[string]struct{}, len(defs))
	out := defs[:0]
	for _, d := range defs {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// appendItems appends the normalized text of each non-empty list item.
func appendItems(defs []string, items []*html.Node) []string {
	for _, li := range items {
		if text := normalizeSpace(htmlquery.InnerText(li)); text != "" {
			defs = append(defs, text)
		}
	}
	return defs
}
