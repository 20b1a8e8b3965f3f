package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KiidxAtlas/pyhover"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	source, offset, err := readContext(c.File, c.Offset, c.Token)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pyhover.ErrorMessage(err))
		return err
	}

	result, err := deps.Lookup.Lookup(deps.Ctx, source, offset, c.Token)
	if err != nil {
		return reportLookupErr(deps, c.Token, err)
	}

	if result.ContextWarning != "" {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", result.ContextWarning)
	}
	fmt.Fprintf(deps.Stderr, "%s\n", result.Key)
	_, _ = deps.Stdout.Write(result.Content)
	return nil
}

// readContext loads the source snippet and pins the cursor offset. With no
// explicit offset the cursor lands on the token's first occurrence.
func readContext(file string, offset int, token string) (string, int, error) {
	var data []byte
	var err error
	if file == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to read source context: %w", err)
	}

	source := string(data)
	if offset >= 0 {
		return source, offset, nil
	}
	idx := strings.Index(source, token)
	if idx < 0 {
		return "", 0, pyhover.Errorf(pyhover.EINVALID, "token %q not found in source", token)
	}
	return source, idx, nil
}

// reportLookupErr renders a lookup failure so "not a recognized symbol" and
// "documentation unavailable" read differently.
func reportLookupErr(deps *Dependencies, token string, err error) error {
	switch pyhover.ErrorCode(err) {
	case pyhover.EUNRESOLVABLE:
		fmt.Fprintf(deps.Stderr, "%q is not a recognized symbol here\n", token)
	case pyhover.EUNAVAILABLE:
		fmt.Fprintf(deps.Stderr, "documentation for %q is currently unavailable: %s\n", token, pyhover.ErrorMessage(err))
	default:
		fmt.Fprintf(deps.Stderr, "error: %s\n", pyhover.ErrorMessage(err))
	}
	return err
}
