package main

import (
	"fmt"

	"github.com/fwojciec/lingua"
	"github.com/fwojciec/lingua/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	exporter := &fs.Exporter{Words: deps.Words, Alphabet: c.Letter}

	n, err := exporter.ExportFile(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lingua.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d definitions to %s\n", n, c.Path)
	return nil
}
