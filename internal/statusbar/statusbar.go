// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/fencedit/internal/theme"
	"github.com/bethropolis/fencedit/internal/types"
)

// DefaultMessageTimeout is how long a temporary message stays up.
const DefaultMessageTimeout = 4 * time.Second

// Config defines the appearance of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme) Config {
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleModified:  th.GetStyle(theme.StyleStatusModified),
		StyleMessage:   th.GetStyle(theme.StyleStatusMessage),
		MessageTimeout: DefaultMessageTimeout,
	}
}

// StatusBar is the bottom status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	cursorPos  types.Position
	showCursor bool
	isModified bool
	label      string
	hint       string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.showCursor = true
}

// SetLabel sets the context label, e.g. the block being edited.
func (sb *StatusBar) SetLabel(label string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.label = label
}

// SetHint sets the key hint shown at the end of the line.
func (sb *StatusBar) SetHint(hint string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.hint = hint
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line Draw would render and whether it is a message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.textLocked()
}

func (sb *StatusBar) textLocked() (string, bool) {
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	text := sb.filePath
	if text == "" {
		text = "[No Name]"
	}
	if sb.isModified {
		text += " [Modified]"
	}
	if sb.label != "" {
		text += " -- " + sb.label
	}
	if sb.showCursor {
		text += fmt.Sprintf(" -- Line: %d, Col: %d", sb.cursorPos.Line+1, sb.cursorPos.Col+1)
	}
	if sb.hint != "" {
		text += " -- " + sb.hint
	}
	return text, false
}

// Draw renders the status bar on the last row of a width x height screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	text, isMessage := sb.textLocked()
	modified := sb.isModified
	sb.mu.Unlock()

	style := sb.config.StyleDefault
	switch {
	case isMessage:
		style = sb.config.StyleMessage
	case modified:
		style = sb.config.StyleModified
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		if runes := gr.Runes(); len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
