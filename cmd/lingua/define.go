package main

import (
	"fmt"

	"github.com/fwojciec/lingua"
)

// Run executes the define command.
func (c *DefineCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Scrape(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Defined %d words, flagged %d for review, %d failed\n",
		result.Defined, result.Flagged, result.Failed)
	if result.Flagged > 0 {
		fmt.Fprintln(deps.Stdout, "Use 'lingua review' to enter definitions for flagged words.")
	}
	return nil
}
