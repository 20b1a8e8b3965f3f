package main

import (
	"fmt"

	"github.com/KiidxAtlas/pyhover"
)

// Run executes the warm command.
func (c *WarmCmd) Run(deps *Dependencies) error {
	keys := deps.Config.WarmKeys
	if len(keys) == 0 {
		keys = defaultWarmKeys(deps.Config.VersionTag)
	}

	warmed := deps.Warmer.Warm(deps.Ctx, keys)
	fmt.Fprintf(deps.Stdout, "Warmed %d of %d keys\n", warmed, len(keys))
	return nil
}

// defaultWarmKeys covers the highest-frequency lookups when the host
// configures none.
func defaultWarmKeys(versionTag string) []pyhover.ResolutionKey {
	symbols := map[string]pyhover.Category{
		"len":   pyhover.CategoryBuiltin,
		"print": pyhover.CategoryBuiltin,
		"range": pyhover.CategoryBuiltin,
		"str":   pyhover.CategoryOther,
		"for":   pyhover.CategoryKeyword,
		"def":   pyhover.CategoryKeyword,
		"os":    pyhover.CategoryModule,
		"json":  pyhover.CategoryModule,
	}
	keys := make([]pyhover.ResolutionKey, 0, len(symbols))
	for symbol, cat := range symbols {
		keys = append(keys, pyhover.ResolutionKey{Symbol: symbol, Category: cat, VersionTag: versionTag})
	}
	return keys
}
