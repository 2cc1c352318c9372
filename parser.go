package lingua

// LinkExtractor pulls anchor targets out of a page's content region.
type LinkExtractor interface {
	// Extract parses markup, locates region, and returns the targets of
	// all anchors inside it in document order, resolved to absolute URLs.
	// Anchors without a target are skipped; duplicates are kept.
	// Returns EEXTRACT if region does not resolve in markup.
	Extract(markup string, region Locator) ([]string, error)
}

// DefinitionExtractor pulls the definitions of a word out of its entry page.
type DefinitionExtractor interface {
	// ExtractDefinitions returns the definition list items for word.
	// Returns an empty slice if the page holds no recognisable definitions.
	ExtractDefinitions(markup string, word string) ([]string, error)
}

// AlphabetExtractor pulls letter sections out of the dictionary index page.
type AlphabetExtractor interface {
	ExtractAlphabets(markup string) ([]*Alphabet, error)
}
