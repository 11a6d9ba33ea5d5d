package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/locate"
	"github.com/fwojciec/locate/build"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	progress := func(event build.ProgressEvent) {
		switch event.Type {
		case build.ProgressMount:
			fmt.Fprintf(deps.Stdout, "Indexing %s\n", event.Mount)
		case build.ProgressPersist:
			fmt.Fprintln(deps.Stdout, "Adding indexed files to database")
		case build.ProgressFinished:
			// Summary printed after the rebuild returns
		}
	}

	summary, err := deps.Builder.RunUpdate(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locate.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d paths from %d mounts (fingerprint %s) in %s\n",
		summary.Paths, len(summary.Mounts), summary.Fingerprint, summary.Duration.Round(time.Millisecond))
	return nil
}
