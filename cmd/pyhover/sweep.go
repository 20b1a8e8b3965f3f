package main

import (
	"fmt"

	"github.com/KiidxAtlas/pyhover"
)

// Run executes the sweep command.
func (c *SweepCmd) Run(deps *Dependencies) error {
	removed, err := deps.Cache.Sweep(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pyhover.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %d expired entries\n", removed)
	return nil
}
