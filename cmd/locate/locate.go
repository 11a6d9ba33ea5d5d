package main

import (
	"fmt"

	"github.com/fwojciec/locate"
)

// Run executes the locate command. Each query prints its own paths, or its
// own count line in count mode.
func (c *LocateCmd) Run(deps *Dependencies) error {
	for _, text := range c.Texts {
		if err := c.run(deps, text); err != nil {
			return err
		}
	}
	return nil
}

func (c *LocateCmd) run(deps *Dependencies, text string) error {
	outcome, err := deps.Engine.RunQuery(deps.Ctx, text, c.Regex, c.Count)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locate.ErrorMessage(err))
		return err
	}

	if c.Verbose {
		fmt.Fprintf(deps.Stderr, "expression: %s\n", outcome.Expression)
	}

	if outcome.Mode == locate.ModeCount {
		fmt.Fprintln(deps.Stdout, outcome.Count)
		return nil
	}

	for _, p := range outcome.Paths {
		fmt.Fprintln(deps.Stdout, p)
	}
	return nil
}
