package mock

import "github.com/fwojciec/lingua"

var (
	_ lingua.LinkExtractor       = (*LinkExtractor)(nil)
	_ lingua.DefinitionExtractor = (*DefinitionExtractor)(nil)
	_ lingua.AlphabetExtractor   = (*AlphabetExtractor)(nil)
)

// LinkExtractor is a mock implementation of lingua.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(markup string, region lingua.Locator) ([]string, error)
}

func (e *LinkExtractor) Extract(markup string, region lingua.Locator) ([]string, error) {
	return e.ExtractFn(markup, region)
}

// DefinitionExtractor is a mock implementation of lingua.DefinitionExtractor.
type DefinitionExtractor struct {
	ExtractDefinitionsFn func(markup, word string) ([]string, error)
}

func (e *DefinitionExtractor) ExtractDefinitions(markup, word string) ([]string, error) {
	return e.ExtractDefinitionsFn(markup, word)
}

// AlphabetExtractor is a mock implementation of lingua.AlphabetExtractor.
type AlphabetExtractor struct {
	ExtractAlphabetsFn func(markup string) ([]*lingua.Alphabet, error)
}

func (e *AlphabetExtractor) ExtractAlphabets(markup string) ([]*lingua.Alphabet, error) {
	return e.ExtractAlphabetsFn(markup)
}
