package main

import (
	"fmt"

	"github.com/KiidxAtlas/pyhover"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	source, offset, err := readContext(c.File, c.Offset, c.Token)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pyhover.ErrorMessage(err))
		return err
	}

	result, err := deps.Lookup.Refresh(deps.Ctx, source, offset, c.Token)
	if err != nil {
		return reportLookupErr(deps, c.Token, err)
	}

	fmt.Fprintf(deps.Stderr, "refreshed %s (%d bytes)\n", result.Key, len(result.Content))
	_, _ = deps.Stdout.Write(result.Content)
	return nil
}
