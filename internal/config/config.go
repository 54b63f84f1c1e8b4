// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/fence"
	"github.com/bethropolis/fencedit/internal/launch"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/preview"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config    `toml:"logger"`
	Editor  EditorConfig     `toml:"editor"`
	Fence   FenceConfig      `toml:"fence"`
	Preview preview.Settings `toml:"preview"`
	Launch  launch.Settings  `toml:"launch"`
}

// EditorConfig holds editor settings.
type EditorConfig struct {
	// Command is the external editor template; {{file}}, {{dir}} and {{lang}}
	// become shell variables, so quote them with double quotes, not single.
	// Ignored when TUI is set.
	Command         string `toml:"command"`
	TUI             bool   `toml:"tui"`
	TabWidth        int    `toml:"tab_width"`
	FontSize        int    `toml:"font_size"`
	ThemeColor      string `toml:"theme_color"`
	ThemeFile       string `toml:"theme_file"`
	LineNumbers     bool   `toml:"line_numbers"`
	WordWrap        bool   `toml:"word_wrap"`
	Minimap         bool   `toml:"minimap"`
	Folding         bool   `toml:"folding"`
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusBarHeight int    `toml:"status_bar_height"`
}

// FenceConfig controls fence recognition.
type FenceConfig struct {
	// ClosePolicy is "lenient" (any closing indent) or "strict".
	ClosePolicy string `toml:"close_policy"`
	// Dedent strips the opening indent from the body while editing.
	Dedent bool `toml:"dedent"`
}

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	logCfg := logger.NewConfig()
	logCfg.LogFilePath = DefaultLogFileName
	return &Config{
		Logger: logCfg,
		Editor: EditorConfig{
			Command:         editor.DefaultCommand,
			TabWidth:        DefaultTabWidth,
			FontSize:        DefaultFontSize,
			ThemeColor:      ThemeAuto,
			LineNumbers:     true,
			WordWrap:        true,
			Minimap:         true,
			Folding:         true,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Fence: FenceConfig{
			ClosePolicy: fence.ClosePolicyLenient.String(),
			Dedent:      true,
		},
		Preview: preview.DefaultSettings(),
		Launch:  launch.DefaultSettings(),
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when that cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	logger.Debugf("Loaded configuration from: %s", filePath)
	return nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.FontSize <= 0 {
		c.Editor.FontSize = defaults.Editor.FontSize
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	switch strings.ToUpper(c.Editor.ThemeColor) {
	case ThemeAuto, ThemeDark, ThemeLight:
		c.Editor.ThemeColor = strings.ToUpper(c.Editor.ThemeColor)
	default:
		c.Editor.ThemeColor = defaults.Editor.ThemeColor
	}

	if _, ok := fence.ParseClosePolicy(c.Fence.ClosePolicy); !ok {
		c.Fence.ClosePolicy = defaults.Fence.ClosePolicy
	}

	if c.Preview.Width <= 0 {
		c.Preview.Width = defaults.Preview.Width
	}
	if c.Preview.Height <= 0 {
		c.Preview.Height = defaults.Preview.Height
	}
	if c.Preview.Gap < 0 {
		c.Preview.Gap = defaults.Preview.Gap
	}

	if strings.TrimSpace(c.Launch.ExecuteTemplate) == "" {
		c.Launch.ExecuteTemplate = defaults.Launch.ExecuteTemplate
	}
	if c.Launch.URLProtocol == "" {
		c.Launch.URLProtocol = defaults.Launch.URLProtocol
	}
	if c.Launch.URLOpener == "" {
		c.Launch.URLOpener = defaults.Launch.URLOpener
	}

	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds the configuration: defaults, then the file at configFilePath
// (or DefaultPath when empty), then flags explicitly set in flags, then
// validation. flags may be nil.
func Load(configFilePath string, flags *pflag.FlagSet) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		ApplyOverrides(cfg, flags)
	}

	cfg.validate()
	return cfg, nil
}

// Policy returns the configured close policy.
func (c *Config) Policy() fence.ClosePolicy {
	policy, _ := fence.ParseClosePolicy(c.Fence.ClosePolicy)
	return policy
}

// EditorOptions returns the mount options for editors.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		LineNumbers: c.Editor.LineNumbers,
		WordWrap:    c.Editor.WordWrap,
		Minimap:     c.Editor.Minimap,
		Folding:     c.Editor.Folding,
		FontSize:    c.Editor.FontSize,
		TabWidth:    c.Editor.TabWidth,
		Theme:       c.Editor.ThemeColor,
	}
}
