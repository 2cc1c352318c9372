package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/lingua"
)

// reviewAction is what the reviewer chose for one word.
type reviewAction int

const (
	reviewSubmit reviewAction = iota
	reviewSkip
	reviewQuit
)

// Run executes the review command.
func (c *ReviewCmd) Run(deps *Dependencies) error {
	flagged := true
	words, err := deps.Words.FindWords(deps.Ctx, lingua.WordFilter{NeedsReview: &flagged})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
		return err
	}

	if len(words) == 0 {
		fmt.Fprintln(deps.Stdout, "No words need review.")
		return nil
	}

	in := bufio.NewScanner(deps.Stdin)
	unflag := false
	var saved, skipped int

	for i, w := range words {
		fmt.Fprintf(deps.Stdout, "\n[%d/%d] %s\n%s\n", i+1, len(words), w.Text, w.URL)

		action, defs := promptDefinitions(deps, in)
		if action == reviewQuit {
			break
		}

		upd := lingua.WordUpdate{NeedsReview: &unflag}
		if action == reviewSubmit {
			upd.Definitions = &defs
		}
		if _, err := deps.Words.UpdateWord(deps.Ctx, w.ID, upd); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
			return err
		}

		if action == reviewSubmit {
			saved++
		} else {
			skipped++
		}
	}

	fmt.Fprintf(deps.Stdout, "\nReviewed %d words: %d saved, %d skipped\n", saved+skipped, saved, skipped)
	return nil
}

// promptDefinitions reads definitions one per line until a blank line.
// A lone "s" skips the word and "q" or end of input quits. A blank line
// before any definition is rejected and the prompt repeats.
func promptDefinitions(deps *Dependencies, in *bufio.Scanner) (reviewAction, []string) {
	fmt.Fprintln(deps.Stdout, "Enter definitions, one per line. Blank line to submit, 's' to skip, 'q' to quit.")

	var defs []string
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !in.Scan() {
			return reviewQuit, nil
		}
		line := strings.TrimSpace(in.Text())

		if len(defs) == 0 {
			switch strings.ToLower(line) {
			case "s":
				return reviewSkip, nil
			case "q":
				return reviewQuit, nil
			case "":
				fmt.Fprintln(deps.Stderr, "warning: enter at least one definition, 's' to skip or 'q' to quit")
				continue
			}
		}

		if line == "" {
			return reviewSubmit, defs
		}
		defs = append(defs, line)
	}
}
