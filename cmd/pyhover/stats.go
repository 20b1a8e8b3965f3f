package main

import "fmt"

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats := deps.Cache.Stats()
	fmt.Fprintf(deps.Stdout, "entries:    %d\n", stats.EntryCount)
	fmt.Fprintf(deps.Stdout, "bytes:      %d\n", stats.BytesUsed)
	fmt.Fprintf(deps.Stdout, "hits:       %d\n", stats.HitCount)
	fmt.Fprintf(deps.Stdout, "misses:     %d\n", stats.MissCount)
	fmt.Fprintf(deps.Stdout, "evictions:  %d\n", stats.EvictionCount)
	return nil
}
