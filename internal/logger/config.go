// Package logger provides configurable logging capabilities
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel specifies the minimum level to log (e.g., "debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the path to the output log file. Use empty or "-" for stderr.
	LogFilePath string `toml:"log_file"`

	// --- Filtering Options ---

	// EnabledTags only logs messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags prevents logging messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages originating from these packages (if non-empty).
	// Package name is the immediate directory name (e.g., "fence", "session", "preview").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages prevents logging from these packages. Overrides EnabledPackages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages originating from these filenames (if non-empty).
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles prevents logging from these filenames. Overrides EnabledFiles.
	DisabledFiles []string `toml:"disabled_files"`

	level    slog.Level
	tags     nameFilter
	packages nameFilter
	files    nameFilter
}

// NewConfig creates a new Config with default values
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to Info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// process resolves the level name and builds the filters.
func (c *Config) process() {
	c.level, _ = ParseLevel(c.LogLevel)
	c.tags = newNameFilter(c.EnabledTags, c.DisabledTags)
	c.packages = newNameFilter(c.EnabledPackages, c.DisabledPackages)
	c.files = newNameFilter(c.EnabledFiles, c.DisabledFiles)
}

// nameFilter is an allow-list and a deny-list of lowercase names. A nil
// set is not applied.
type nameFilter struct {
	enabled  map[string]struct{}
	disabled map[string]struct{}
}

func newNameFilter(enabled, disabled []string) nameFilter {
	return nameFilter{enabled: sliceToSet(enabled), disabled: sliceToSet(disabled)}
}

// restricted reports whether the filter has an allow-list.
func (f nameFilter) restricted() bool { return f.enabled != nil }

// allows applies the filter to name. Disabled always wins.
func (f nameFilter) allows(name string) bool {
	name = strings.ToLower(name)
	if _, found := f.disabled[name]; found {
		return false
	}
	if f.enabled != nil {
		if _, found := f.enabled[name]; !found {
			return false
		}
	}
	return true
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
