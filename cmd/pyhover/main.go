package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KiidxAtlas/pyhover"
	"github.com/KiidxAtlas/pyhover/bloom"
	"github.com/KiidxAtlas/pyhover/cache"
	"github.com/KiidxAtlas/pyhover/fetch"
	pyhoverhttp "github.com/KiidxAtlas/pyhover/http"
	"github.com/KiidxAtlas/pyhover/lookup"
	"github.com/KiidxAtlas/pyhover/pydict"
	"github.com/KiidxAtlas/pyhover/resolve"
	pyhoverslog "github.com/KiidxAtlas/pyhover/slog"
	"github.com/KiidxAtlas/pyhover/sqlite"
	"github.com/KiidxAtlas/pyhover/toml"
	"github.com/alecthomas/kong"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database and config paths. Set before calling Run().
	DBPath     string
	ConfigPath string

	// SQLite database backing the persisted cache tier.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Config pyhover.Config
	Cache  pyhover.Cache
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pyhover"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pyhover --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, notes, err := toml.Load(m.ConfigPath)
	if err != nil {
		return err
	}
	for _, note := range notes {
		logger.Warn("config adjusted", "note", note)
	}
	m.Config = cfg
	deps.Config = cfg

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PYHOVER_DB to use a different database path\n")
		return fmt.Errorf("failed to open cache database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	dict := pydict.New()
	resolver := resolve.NewResolver(dict, cfg.VersionTag)
	transport := pyhoverhttp.NewTransport(pyhoverhttp.WithTimeout(cfg.PerAttemptTimeout()))

	var fetcher pyhover.Fetcher = fetch.NewFetcher(transport, dict, cfg)
	fetcher = pyhoverslog.NewLoggingFetcher(fetcher, logger)

	var store pyhover.Cache = cache.NewStore(sqlite.NewStorage(m.DB), cfg, cache.WithLogger(logger))
	store = pyhoverslog.NewLoggingCache(store, logger)
	m.Cache = store
	deps.Cache = store

	deps.Warmer = cache.NewWarmer(store, fetcher.Fetch, cache.WithWarmLogger(logger))
	deps.Lookup = lookup.NewService(resolver, store, fetcher,
		lookup.WithSymbolFilter(bloom.NewSymbolFilter(dict.Symbols(), 0.01)))

	if cfg.WarmOnStartup && len(cfg.WarmKeys) > 0 {
		deps.Warmer.Warm(ctx, cfg.WarmKeys)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PYHOVER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pyhover.db"
	}
	dir := filepath.Join(home, ".pyhover")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pyhover.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("PYHOVER_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pyhover.toml"
	}
	return filepath.Join(home, ".pyhover", "config.toml")
}
