// Package config provides configuration loading for pinpoint using TOML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pinpoint/fetcher"
	"pinpoint/locator"
)

// Locator search budgets and filters.
type Locator struct {
	AscentLevels         int     `toml:"ascentLevels"`
	CandidateCap         int     `toml:"candidateCap"`
	FrontierCap          int     `toml:"frontierCap"`
	AnchorDepth          int     `toml:"anchorDepth"`
	MinSeedLength        int     `toml:"minSeedLength"`
	MinSimilarForLCA     int     `toml:"minSimilarForLCA"`
	ImprovementThreshold float64 `toml:"improvementThreshold"`
	// ExtraGenericIDs are appended to the built-in generic id list.
	ExtraGenericIDs []string `toml:"extraGenericIds"`
	// ExtraUtilityPrefixes reject classes starting with any of them.
	ExtraUtilityPrefixes []string `toml:"extraUtilityPrefixes"`
}

// HTTP fetching settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	ChromePath     string `toml:"chromePath"`
	Browser        bool   `toml:"browser"` // always render with Chrome
}

// Output settings
type Output struct {
	Color string `toml:"color"` // "auto", "always" or "never"
	JSON  bool   `toml:"json"`
}

// Config is the root configuration.
type Config struct {
	Locator Locator `toml:"locator"`
	Fetcher Fetcher `toml:"fetcher"`
	Output  Output  `toml:"output"`
}

// Default returns the default configuration.
func Default() *Config {
	d := locator.DefaultConfig()
	fo := fetcher.DefaultOptions()
	return &Config{
		Locator: Locator{
			AscentLevels:         d.AscentLevels,
			CandidateCap:         d.CandidateCap,
			FrontierCap:          d.FrontierCap,
			AnchorDepth:          d.AnchorDepth,
			MinSeedLength:        d.MinSeedLength,
			MinSimilarForLCA:     d.MinSimilarForLCA,
			ImprovementThreshold: d.ImprovementThreshold,
		},
		Fetcher: Fetcher{
			UserAgent:      fo.UserAgent,
			TimeoutSeconds: fo.TimeoutSeconds,
		},
		Output: Output{
			Color: "auto",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pinpoint"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the user config file, layered on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}
	return LoadFile(configPath)
}

// LoadFile loads path on top of defaults. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	userCfg, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return merge(cfg, userCfg), nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return &cfg, nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	mergeInt(&result.Locator.AscentLevels, user.Locator.AscentLevels)
	mergeInt(&result.Locator.CandidateCap, user.Locator.CandidateCap)
	mergeInt(&result.Locator.FrontierCap, user.Locator.FrontierCap)
	mergeInt(&result.Locator.AnchorDepth, user.Locator.AnchorDepth)
	mergeInt(&result.Locator.MinSeedLength, user.Locator.MinSeedLength)
	mergeInt(&result.Locator.MinSimilarForLCA, user.Locator.MinSimilarForLCA)
	if user.Locator.ImprovementThreshold > 0 {
		result.Locator.ImprovementThreshold = user.Locator.ImprovementThreshold
	}
	result.Locator.ExtraGenericIDs = append(result.Locator.ExtraGenericIDs, user.Locator.ExtraGenericIDs...)
	result.Locator.ExtraUtilityPrefixes = append(result.Locator.ExtraUtilityPrefixes, user.Locator.ExtraUtilityPrefixes...)

	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	mergeInt(&result.Fetcher.TimeoutSeconds, user.Fetcher.TimeoutSeconds)
	if user.Fetcher.ChromePath != "" {
		result.Fetcher.ChromePath = user.Fetcher.ChromePath
	}
	result.Fetcher.Browser = result.Fetcher.Browser || user.Fetcher.Browser

	if user.Output.Color != "" {
		result.Output.Color = user.Output.Color
	}
	result.Output.JSON = result.Output.JSON || user.Output.JSON

	return &result
}

func mergeInt(dst *int, src int) {
	if src > 0 {
		*dst = src
	}
}

// LocatorConfig maps the [locator] section onto locator.Config.
func (c *Config) LocatorConfig(logger *slog.Logger) locator.Config {
	lc := locator.DefaultConfig()
	lc.AscentLevels = c.Locator.AscentLevels
	lc.CandidateCap = c.Locator.CandidateCap
	lc.FrontierCap = c.Locator.FrontierCap
	lc.AnchorDepth = c.Locator.AnchorDepth
	lc.MinSeedLength = c.Locator.MinSeedLength
	lc.MinSimilarForLCA = c.Locator.MinSimilarForLCA
	lc.ImprovementThreshold = c.Locator.ImprovementThreshold
	lc.AcceptClass = locator.AcceptClassWithPrefixes(c.Locator.ExtraUtilityPrefixes)
	if len(c.Locator.ExtraGenericIDs) > 0 {
		lc.GenericIDs = append(append([]string{}, locator.DefaultGenericIDs...), c.Locator.ExtraGenericIDs...)
	}
	lc.Logger = logger
	return lc
}

// FetcherOptions maps the [fetcher] section onto fetcher.Options.
func (c *Config) FetcherOptions() fetcher.Options {
	return fetcher.Options{
		UserAgent:      c.Fetcher.UserAgent,
		TimeoutSeconds: c.Fetcher.TimeoutSeconds,
		ChromePath:     c.Fetcher.ChromePath,
	}
}

// DefaultTOML returns the default configuration as a TOML string.
// Used by init-config to generate a user config file.
func DefaultTOML() string {
	return `# pinpoint configuration
# Save to ~/.config/pinpoint/config.toml and customize
# Only include settings you want to change from defaults

# Locator search budgets
[locator]
ascentLevels = 5              # Ancestors the structural search may climb
candidateCap = 10             # Stop climbing once this many unique paths exist
frontierCap = 1024            # Paths carried from one level to the next
anchorDepth = 6               # Depth budget of the anchored XPath
minSeedLength = 1             # Ignore id/class/attribute values shorter than this
minSimilarForLCA = 15         # Same-tag descendants a list container needs
improvementThreshold = 0.3    # Relative gain the container strategy needs to win
extraGenericIds = []          # Ids never worth anchoring on, e.g. ["page"]
extraUtilityPrefixes = []     # Utility class prefixes to ignore, e.g. ["tw-"]

# HTTP fetching settings
[fetcher]
userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
timeoutSeconds = 30
chromePath = ""               # Path to Chrome/Chromium (empty = auto-detect)
browser = false               # Always render with Chrome (enables real visibility)

# Output settings
[output]
color = "auto"                # auto, always or never
json = false
`
}

// WriteDefault writes DefaultTOML to path, refusing to overwrite unless
// force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, []byte(DefaultTOML()), 0o644)
}
