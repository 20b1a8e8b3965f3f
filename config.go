package pyhover

import (
	"fmt"
	"time"
)

// Configuration bounds and defaults. Out-of-range values are clamped to the
// nearest bound at startup rather than rejected; a misconfigured host still
// gets a working lookup pipeline.
const (
	DefaultCacheTTLDays   = 7
	MinCacheTTLDays       = 1
	MaxCacheTTLDays       = 365
	DefaultMaxEntries     = 512
	DefaultMaxBytes       = 32 << 20
	DefaultMaxRetries     = 3
	DefaultBaseDelayMs    = 1000
	DefaultMaxDelayMs     = 30000
	DefaultJitterFraction = 0.2
	DefaultNegativeTTLMs  = 30000
	DefaultAttemptTimeout = 8000
	DefaultFetchRate      = 4.0
)

// Config holds the options recognized by the core. It is owned externally
// and read once at initialization.
type Config struct {
	// VersionTag identifies the documentation source version, e.g. "3.12".
	VersionTag string `toml:"versionTag"`

	// DocBaseURL is the root of the documentation source. The %s verb is
	// replaced by VersionTag.
	DocBaseURL string `toml:"docBaseUrl"`

	CacheTTLDays    int     `toml:"cacheTtlDays"`
	MaxCacheEntries int     `toml:"maxCacheEntries"`
	MaxCacheBytes   int64   `toml:"maxCacheBytes"`
	MaxRetries      int     `toml:"maxRetries"`
	BaseDelayMs     int     `toml:"baseDelayMs"`
	MaxDelayMs      int     `toml:"maxDelayMs"`
	JitterFraction  float64 `toml:"jitterFraction"`
	NegativeTTLMs   int     `toml:"negativeTtlMs"`
	AttemptTimeout  int     `toml:"attemptTimeoutMs"`
	FetchRatePerSec float64 `toml:"fetchRatePerSec"`
	WarmOnStartup   bool    `toml:"warmOnStartup"`

	// WarmKeys are pre-populated at startup when WarmOnStartup is set.
	WarmKeys []ResolutionKey `toml:"warmKeys"`
}

// DefaultConfig returns a Config with every option at its default.
func DefaultConfig() Config {
	return Config{
		VersionTag:      "3.12",
		DocBaseURL:      "https://docs.python.org/%s/",
		CacheTTLDays:    DefaultCacheTTLDays,
		MaxCacheEntries: DefaultMaxEntries,
		MaxCacheBytes:   DefaultMaxBytes,
		MaxRetries:      DefaultMaxRetries,
		BaseDelayMs:     DefaultBaseDelayMs,
		MaxDelayMs:      DefaultMaxDelayMs,
		JitterFraction:  DefaultJitterFraction,
		NegativeTTLMs:   DefaultNegativeTTLMs,
		AttemptTimeout:  DefaultAttemptTimeout,
		FetchRatePerSec: DefaultFetchRate,
	}
}

// Normalize clamps out-of-range values to their nearest valid bound and
// returns a description of each adjustment for diagnostic logging. It never
// fails: invalid configuration degrades to defaults instead of aborting
// startup.
func (c *Config) Normalize() []string {
	var notes []string
	clampInt := func(name string, v *int, lo, hi, def int) {
		switch {
		case *v == 0:
			*v = def
		case *v < lo:
			notes = append(notes, fmt.Sprintf("%s %d below minimum, clamped to %d", name, *v, lo))
			*v = lo
		case *v > hi:
			notes = append(notes, fmt.Sprintf("%s %d above maximum, clamped to %d", name, *v, hi))
			*v = hi
		}
	}

	clampInt("cacheTtlDays", &c.CacheTTLDays, MinCacheTTLDays, MaxCacheTTLDays, DefaultCacheTTLDays)
	clampInt("maxCacheEntries", &c.MaxCacheEntries, 1, 1<<20, DefaultMaxEntries)
	clampInt("maxRetries", &c.MaxRetries, 1, 10, DefaultMaxRetries)
	clampInt("baseDelayMs", &c.BaseDelayMs, 1, 60000, DefaultBaseDelayMs)
	clampInt("maxDelayMs", &c.MaxDelayMs, c.BaseDelayMs, 300000, DefaultMaxDelayMs)
	clampInt("negativeTtlMs", &c.NegativeTTLMs, 0, 3600000, DefaultNegativeTTLMs)
	clampInt("attemptTimeoutMs", &c.AttemptTimeout, 100, 120000, DefaultAttemptTimeout)

	if c.MaxCacheBytes <= 0 {
		c.MaxCacheBytes = DefaultMaxBytes
	}
	switch {
	case c.JitterFraction == 0:
		c.JitterFraction = DefaultJitterFraction
	case c.JitterFraction < 0:
		notes = append(notes, fmt.Sprintf("jitterFraction %v below minimum, clamped to 0", c.JitterFraction))
		c.JitterFraction = 0
	case c.JitterFraction > 1:
		notes = append(notes, fmt.Sprintf("jitterFraction %v above maximum, clamped to 1", c.JitterFraction))
		c.JitterFraction = 1
	}
	if c.FetchRatePerSec <= 0 {
		c.FetchRatePerSec = DefaultFetchRate
	}
	if c.VersionTag == "" {
		c.VersionTag = "3.12"
	}
	if c.DocBaseURL == "" {
		c.DocBaseURL = "https://docs.python.org/%s/"
	}
	return notes
}

// CacheTTL returns the entry time to live as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLDays) * 24 * time.Hour
}

// NegativeTTL returns how long a fatal fetch outcome is remembered.
func (c Config) NegativeTTL() time.Duration {
	return time.Duration(c.NegativeTTLMs) * time.Millisecond
}

// BaseDelay returns the initial retry backoff.
func (c Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMs) * time.Millisecond
}

// MaxDelay returns the backoff ceiling.
func (c Config) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}

// PerAttemptTimeout returns the timeout applied to each fetch attempt.
func (c Config) PerAttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeout) * time.Millisecond
}
