// Package pyhover provides the retrieval-and-caching core of an on-demand
// Python documentation lookup tool. Given a token encountered in source code
// plus its surrounding lexical context, it resolves the token's identity,
// serves reference content from a two-tier cache (memory + SQLite), and
// populates cache misses through a retrying fetch layer.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/) or their domain
// when they are pure logic (e.g., resolve/, cache/, fetch/).
package pyhover
