package main

import (
	"fmt"

	"github.com/fwojciec/lingua"
	"github.com/fwojciec/lingua/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	alphabets, err := deps.Alphabets.FindAlphabets(deps.Ctx, lingua.AlphabetFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
		return err
	}
	if len(alphabets) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no alphabets found. Use 'lingua alphabets' to discover them first.")
		return lingua.Errorf(lingua.EINVALID, "no alphabets found")
	}

	runs, err := selectRuns(alphabets, c.Letter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
		return err
	}

	results := deps.Coordinator.RunAll(deps.Ctx, runs)

	var stored, failed int
	for _, r := range results {
		fmt.Fprintln(deps.Stdout, crawl.FormatRunResult(r))
		stored += r.Stored
		if r.State == lingua.RunFailed {
			failed++
		}
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d sections: %d complete, %d failed, %d links stored\n",
		len(results), len(results)-failed, failed, stored)

	if failed > 0 {
		return fmt.Errorf("%d of %d sections failed; run again to resume", failed, len(results))
	}
	return nil
}

// selectRuns builds one run per alphabet, restricted to letters when given.
func selectRuns(alphabets []*lingua.Alphabet, letters []string) ([]lingua.Run, error) {
	byLetter := make(map[string]*lingua.Alphabet, len(alphabets))
	for _, a := range alphabets {
		byLetter[a.Letter] = a
	}

	if len(letters) == 0 {
		runs := make([]lingua.Run, 0, len(alphabets))
		for _, a := range alphabets {
			runs = append(runs, lingua.Run{Key: a.Letter, StartURL: a.URL})
		}
		return runs, nil
	}

	runs := make([]lingua.Run, 0, len(letters))
	for _, letter := range letters {
		a, ok := byLetter[letter]
		if !ok {
			return nil, lingua.Errorf(lingua.ENOTFOUND, "alphabet %q not found", letter)
		}
		runs = append(runs, lingua.Run{Key: a.Letter, StartURL: a.URL})
	}
	return runs, nil
}
