package main

import (
	"context"
	"io"

	"github.com/KiidxAtlas/pyhover"
	"github.com/KiidxAtlas/pyhover/cache"
	"github.com/KiidxAtlas/pyhover/lookup"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config pyhover.Config
	Cache  pyhover.Cache
	Lookup *lookup.Service
	Warmer *cache.Warmer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Lookup  LookupCmd  `cmd:"" help:"Resolve a token in context and print its documentation"`
	Refresh RefreshCmd `cmd:"" help:"Invalidate a token's cached documentation and fetch it again"`
	Warm    WarmCmd    `cmd:"" help:"Pre-populate the cache for the configured warm keys"`
	Stats   StatsCmd   `cmd:"" help:"Show cache statistics"`
	Clear   ClearCmd   `cmd:"" help:"Clear cached documentation"`
	Sweep   SweepCmd   `cmd:"" help:"Remove expired entries from both cache tiers"`

	Debug bool `help:"Enable debug logging"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Token  string `arg:"" help:"Token under the cursor"`
	File   string `short:"f" help:"Source file providing lexical context (defaults to stdin)"`
	Offset int    `short:"o" default:"-1" help:"Byte offset of the cursor (defaults to the token's first occurrence)"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	Token  string `arg:"" help:"Token under the cursor"`
	File   string `short:"f" help:"Source file providing lexical context (defaults to stdin)"`
	Offset int    `short:"o" default:"-1" help:"Byte offset of the cursor (defaults to the token's first occurrence)"`
}

// WarmCmd is the "warm" subcommand.
type WarmCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Version string `help:"Only clear entries for this documentation version tag"`
	Force   bool   `help:"Confirm clearing"`
}

// SweepCmd is the "sweep" subcommand.
type SweepCmd struct{}
