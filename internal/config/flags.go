// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bethropolis/fencedit/internal/logger"
)

// Flag names shared by the CLI and ApplyOverrides.
const (
	FlagConfig          = "config"
	FlagLogLevel        = "loglevel"
	FlagLogFile         = "logfile"
	FlagTabWidth        = "tabwidth"
	FlagSystemClipboard = "system-clipboard"
	FlagClosePolicy     = "close-policy"
	FlagLogTags         = "log-tags"
	FlagLogDisableTags  = "log-disable-tags"
	FlagLogPackages     = "log-packages"
	FlagLogDisablePkgs  = "log-disable-packages"
)

// DefineFlags registers the global configuration flags on fs.
func DefineFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	fs.String(FlagLogLevel, "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.String(FlagLogFile, "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.Int(FlagTabWidth, 0, "Number of spaces per indent level - Overrides config file")
	fs.Bool(FlagSystemClipboard, false, "Use system clipboard instead of internal clipboard")
	fs.String(FlagClosePolicy, "", "Closing fence indentation rule (lenient, strict) - Overrides config file")
	fs.String(FlagLogTags, "", "Comma-separated list of tags to enable - Overrides config file")
	fs.String(FlagLogDisableTags, "", "Comma-separated list of tags to disable - Overrides config file")
	fs.String(FlagLogPackages, "", "Comma-separated list of packages to enable - Overrides config file")
	fs.String(FlagLogDisablePkgs, "", "Comma-separated list of packages to disable - Overrides config file")
}

// ApplyOverrides copies every flag that was set on the command line into cfg.
func ApplyOverrides(cfg *Config, fs *pflag.FlagSet) {
	// Visit only processes flags that were actually set
	fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		value := fl.Value.String()
		switch fl.Name {
		case FlagLogLevel:
			if value != "" {
				cfg.Logger.LogLevel = value
			}
		case FlagLogFile:
			cfg.Logger.LogFilePath = value
		case FlagTabWidth:
			if width, err := fs.GetInt(FlagTabWidth); err == nil && width > 0 {
				cfg.Editor.TabWidth = width
			}
		case FlagSystemClipboard:
			if on, err := fs.GetBool(FlagSystemClipboard); err == nil {
				cfg.Editor.SystemClipboard = on
			}
		case FlagClosePolicy:
			if value != "" {
				cfg.Fence.ClosePolicy = value
			}
		case FlagLogTags:
			cfg.Logger.EnabledTags = splitCommaList(value)
		case FlagLogDisableTags:
			cfg.Logger.DisabledTags = splitCommaList(value)
		case FlagLogPackages:
			cfg.Logger.EnabledPackages = splitCommaList(value)
		case FlagLogDisablePkgs:
			cfg.Logger.DisabledPackages = splitCommaList(value)
		}
	})
}

// splitCommaList splits a comma-separated list, dropping empty items.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
