// Package toml loads pyhover configuration files.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/KiidxAtlas/pyhover"
	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML configuration file into a normalized Config. A missing
// file is not an error: defaults apply. Out-of-range values are clamped, not
// rejected; the returned notes describe each adjustment for diagnostic
// logging.
func Load(path string) (pyhover.Config, []string, error) {
	cfg := pyhover.DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		notes := cfg.Normalize()
		return cfg, notes, nil
	}
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	notes := cfg.Normalize()
	return cfg, notes, nil
}
