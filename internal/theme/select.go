// internal/theme/select.go
package theme

import (
	"strconv"
	"strings"

	"github.com/bethropolis/fencedit/internal/logger"
)

// Theme color settings.
const (
	ColorAuto  = "AUTO"
	ColorDark  = "DARK"
	ColorLight = "LIGHT"
)

// Select returns the built-in theme for a theme color setting. AUTO follows
// the terminal background reported in COLORFGBG and defaults to dark.
func Select(themeColor string, getenv func(string) string) *Theme {
	switch strings.ToUpper(themeColor) {
	case ColorLight:
		return Light()
	case ColorDark:
		return Dark()
	}
	if getenv != nil && terminalIsLight(getenv("COLORFGBG")) {
		return Light()
	}
	return Dark()
}

// terminalIsLight interprets COLORFGBG ("fg;bg" or "fg;default;bg"), where
// background colors 7 and 9-15 are light.
func terminalIsLight(colorfgbg string) bool {
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false
	}
	return bg == 7 || (bg >= 9 && bg <= 15)
}

// Load selects the built-in theme for themeColor and applies the styles of
// themeFile over it when one is given. A broken theme file is logged and
// ignored.
func Load(themeColor, themeFile string, getenv func(string) string) *Theme {
	t := Select(themeColor, getenv)
	if themeFile == "" {
		return t
	}
	custom, err := LoadFile(themeFile, t)
	if err != nil {
		logger.Warnf("Theme: %v; using %s", err, t.Name)
		return t
	}
	logger.Infof("Theme: loaded %s from %s", custom.Name, themeFile)
	return custom
}
