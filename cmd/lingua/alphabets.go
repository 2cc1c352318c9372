package main

import (
	"fmt"

	"github.com/fwojciec/lingua"
)

// Run executes the alphabets command.
func (c *AlphabetsCmd) Run(deps *Dependencies) error {
	result, err := deps.Discoverer.Discover(deps.Ctx, lingua.IndexURL, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
		return err
	}

	if result.Skipped {
		fmt.Fprintf(deps.Stdout, "%d alphabets already discovered. Use --force to rediscover.\n", len(result.Alphabets))
		return nil
	}

	for _, a := range result.Alphabets {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", a.Letter, a.URL)
	}
	fmt.Fprintf(deps.Stdout, "Discovered %d alphabets", len(result.Alphabets))
	if result.Deleted > 0 {
		fmt.Fprintf(deps.Stdout, " (%d previous alphabets replaced)", result.Deleted)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
