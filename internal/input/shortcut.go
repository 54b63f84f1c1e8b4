package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/fencedit/internal/editor"
)

// PasteKey is the ctrl key whose action is overridden by the session's
// clipboard-aware paste.
const PasteKey = "v"

// Shortcuts maps a ctrl+key name to the editor action it triggers.
var Shortcuts = map[string]string{
	"f":      editor.ActionFind,
	"h":      editor.ActionFindReplace,
	"/":      editor.ActionCommentLine,
	"enter":  editor.ActionInsertLineAfter,
	"[":      editor.ActionOutdentLines,
	"]":      editor.ActionIndentLines,
	"d":      editor.ActionCopyLinesDown,
	"c":      editor.ActionCopy,
	PasteKey: editor.ActionPaste,
	"x":      editor.ActionCut,
}

// Shortcut returns the ctrl+key name of ev and the editor action bound to it.
// ok is false when ev is not a ctrl combination or nothing is bound.
func Shortcut(ev *tcell.EventKey) (name, action string, ok bool) {
	name, ok = CtrlKeyName(ev)
	if !ok {
		return "", "", false
	}
	action, ok = Shortcuts[name]
	return name, action, ok
}

// CtrlKeyName names the key pressed together with ctrl: a lower-case letter,
// a punctuation character or "enter". Terminals report several ctrl
// combinations as control codes; those are mapped back to their key.
func CtrlKeyName(ev *tcell.EventKey) (string, bool) {
	key, ctrl := ev.Key(), ev.Modifiers()&tcell.ModCtrl != 0

	switch {
	case key == tcell.KeyRune:
		if !ctrl {
			return "", false
		}
		return strings.ToLower(string(ev.Rune())), true
	case key == tcell.KeyEnter:
		// Enter shares its code with ctrl+m; only an explicit modifier counts.
		return "enter", ctrl
	case key == tcell.KeyCtrlJ:
		// Most terminals send a line feed for ctrl+enter.
		return "enter", true
	case key == tcell.KeyBackspace:
		return "h", ctrl
	case key == tcell.KeyTab:
		return "i", ctrl
	case key == tcell.KeyEscape:
		return "[", ctrl
	case key == tcell.KeyCtrlRightSq:
		return "]", true
	case key == tcell.KeyCtrlUnderscore:
		return "/", true
	case key == tcell.KeyCtrlBackslash:
		return "\\", true
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return string(rune('a' + int(key-tcell.KeyCtrlA))), true
	}
	return "", false
}
