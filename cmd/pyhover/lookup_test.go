package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/KiidxAtlas/pyhover"
	"github.com/KiidxAtlas/pyhover/cache"
	main "github.com/KiidxAtlas/pyhover/cmd/pyhover"
	"github.com/KiidxAtlas/pyhover/lookup"
	"github.com/KiidxAtlas/pyhover/mock"
	"github.com/KiidxAtlas/pyhover/pydict"
	"github.com/KiidxAtlas/pyhover/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDeps wires a full lookup stack over a canned fetcher, so commands
// run end to end without touching the network.
func newTestDeps(t *testing.T, fetchFn func(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error)) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cfg := pyhover.DefaultConfig()
	cfg.Normalize()

	dict := pydict.New()
	resolver := resolve.NewResolver(dict, cfg.VersionTag)
	fetcher := &mock.Fetcher{FetchFn: fetchFn}
	store := cache.NewStore(nil, cfg)

	var stdout, stderr bytes.Buffer
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: &stdout,
		Stderr: &stderr,
		Config: cfg,
		Cache:  store,
		Lookup: lookup.NewService(resolver, store, fetcher),
		Warmer: cache.NewWarmer(store, fetcher.Fetch),
	}
	return deps, &stdout, &stderr
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snippet.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func docsFetch(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
	return []byte("docs for " + key.Symbol), nil
}

func TestLookupCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints content for a resolvable token", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newTestDeps(t, docsFetch)
		cmd := &main.LookupCmd{
			Token:  "len",
			File:   writeSource(t, "n = len(items)\n"),
			Offset: -1,
		}

		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "docs for len", stdout.String())
		assert.Contains(t, stderr.String(), "len")
	})

	t.Run("renders context warnings on stderr", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newTestDeps(t, docsFetch)
		cmd := &main.LookupCmd{
			Token:  "await",
			File:   writeSource(t, "def main():\n    await task\n"),
			Offset: -1,
		}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "await outside async")
		assert.Equal(t, "docs for await", stdout.String())
	})

	t.Run("unrecognized tokens read differently from fetch failures", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newTestDeps(t, docsFetch)
		cmd := &main.LookupCmd{
			Token:  "widget",
			File:   writeSource(t, "widget = 1\n"),
			Offset: -1,
		}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pyhover.EUNRESOLVABLE, pyhover.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not a recognized symbol")
	})

	t.Run("fetch failures report unavailable", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newTestDeps(t, func(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
			return nil, &pyhover.FetchError{Kind: pyhover.FetchExhausted, Key: key}
		})
		cmd := &main.LookupCmd{
			Token:  "len",
			File:   writeSource(t, "n = len(items)\n"),
			Offset: -1,
		}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pyhover.EUNAVAILABLE, pyhover.ErrorCode(err))
		assert.Contains(t, stderr.String(), "currently unavailable")
	})

	t.Run("token absent from the source is invalid", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newTestDeps(t, docsFetch)
		cmd := &main.LookupCmd{
			Token:  "len",
			File:   writeSource(t, "x = 1\n"),
			Offset: -1,
		}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pyhover.EINVALID, pyhover.ErrorCode(err))
	})

	t.Run("explicit offset is respected", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newTestDeps(t, docsFetch)
		source := "n = len(items)\n"
		cmd := &main.LookupCmd{
			Token:  "len",
			File:   writeSource(t, source),
			Offset: 4,
		}

		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "docs for len", stdout.String())
	})
}

func TestRefreshCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("refetches previously cached content", func(t *testing.T) {
		t.Parallel()

		var calls int
		deps, stdout, _ := newTestDeps(t, func(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
			calls++
			if calls == 1 {
				return []byte("stale"), nil
			}
			return []byte("fresh"), nil
		})

		file := writeSource(t, "n = len(items)\n")
		require.NoError(t, (&main.LookupCmd{Token: "len", File: file, Offset: -1}).Run(deps))

		stdout.Reset()
		require.NoError(t, (&main.RefreshCmd{Token: "len", File: file, Offset: -1}).Run(deps))

		assert.Equal(t, "fresh", stdout.String())
		assert.Equal(t, 2, calls)
	})
}

func TestWarmCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newTestDeps(t, docsFetch)

	require.NoError(t, (&main.WarmCmd{}).Run(deps))
	assert.Contains(t, stdout.String(), "Warmed 8 of 8 keys")
	assert.Equal(t, 8, deps.Cache.Stats().EntryCount)
}
