package config

// Base application details
const AppName = "fencedit"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "fencedit.log"

// UI Layout
const StatusBarHeight = 1

// Editor defaults.
const DefaultTabWidth = 4
const DefaultFontSize = 16
const SystemClipboard = false

// Theme colors accepted by editor.theme_color.
const (
	ThemeAuto  = "AUTO"
	ThemeDark  = "DARK"
	ThemeLight = "LIGHT"
)
