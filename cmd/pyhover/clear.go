package main

import (
	"fmt"

	"github.com/KiidxAtlas/pyhover"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm clearing\n")
		return pyhover.Errorf(pyhover.EINVALID, "use --force to confirm clearing")
	}

	if err := deps.Cache.InvalidateAll(deps.Ctx, c.Version); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pyhover.ErrorMessage(err))
		return err
	}

	if c.Version == "" {
		fmt.Fprintln(deps.Stdout, "Cleared all cached documentation")
	} else {
		fmt.Fprintf(deps.Stdout, "Cleared cached documentation for version %q\n", c.Version)
	}
	return nil
}
