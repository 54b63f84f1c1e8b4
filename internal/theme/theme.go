// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/fencedit/internal/logger"
)

// Style names used by the terminal UI.
const (
	StyleDefault        = "Default"
	StyleSelection      = "Selection"
	StyleCursorLine     = "CursorLine"
	StyleLineNumber     = "LineNumber"
	StyleFence          = "Fence"
	StyleLink           = "Link"
	StylePopover        = "Popover"
	StylePopoverBorder  = "Popover.border"
	StyleStatusBar      = "StatusBar"
	StyleStatusModified = "StatusBar.modified"
	StyleStatusMessage  = "StatusBar.message"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to the part before the
// first dot and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// clone returns a copy whose style map can be changed independently.
func (t *Theme) clone() *Theme {
	styles := make(map[string]tcell.Style, len(t.Styles))
	for name, style := range t.Styles {
		styles[name] = style
	}
	return &Theme{Name: t.Name, IsDark: t.IsDark, Styles: styles}
}

type palette struct {
	background, foreground, muted, accent, link, popover tcell.Color
}

func build(name string, dark bool, p palette) *Theme {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(p.foreground)
	bar := tcell.StyleDefault.Background(p.background).Foreground(p.foreground)
	popover := tcell.StyleDefault.Background(p.popover).Foreground(p.foreground)

	return &Theme{
		Name:   name,
		IsDark: dark,
		Styles: map[string]tcell.Style{
			StyleDefault:        base,
			StyleSelection:      base.Reverse(true),
			StyleCursorLine:     base.Bold(true),
			StyleLineNumber:     base.Foreground(p.muted),
			StyleFence:          base.Foreground(p.accent),
			StyleLink:           base.Foreground(p.link).Underline(true),
			StylePopover:        popover,
			StylePopoverBorder:  popover.Foreground(p.muted),
			StyleStatusBar:      bar,
			StyleStatusModified: bar.Foreground(p.accent),
			StyleStatusMessage:  bar.Bold(true),
		},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return build("Dark", true, palette{
		background: tcell.NewHexColor(0x2a2f38),
		foreground: tcell.NewHexColor(0xc5cdd9),
		muted:      tcell.NewHexColor(0x5c6370),
		accent:     tcell.NewHexColor(0xe5c07b),
		link:       tcell.NewHexColor(0x61afef),
		popover:    tcell.NewHexColor(0x21252b),
	})
}

// Light returns the built-in light theme.
func Light() *Theme {
	return build("Light", false, palette{
		background: tcell.NewHexColor(0xe5e5e6),
		foreground: tcell.NewHexColor(0x383a42),
		muted:      tcell.NewHexColor(0xa0a1a7),
		accent:     tcell.NewHexColor(0xc18401),
		link:       tcell.NewHexColor(0x4078f2),
		popover:    tcell.NewHexColor(0xf0f0f1),
	})
}
