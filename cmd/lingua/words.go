package main

import (
	"fmt"

	"github.com/fwojciec/lingua"
)

// Run executes the words command.
func (c *WordsCmd) Run(deps *Dependencies) error {
	words, err := deps.Words.FindWords(deps.Ctx, lingua.WordFilter{Alphabet: &c.Letter})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
		return err
	}

	if len(words) == 0 {
		fmt.Fprintf(deps.Stdout, "No words found for %q. Use 'lingua crawl --letter %s' to collect them.\n", c.Letter, c.Letter)
		return nil
	}

	for _, w := range words {
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", w.Text, w.URL)
	}
	return nil
}
