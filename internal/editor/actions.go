package editor

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/types"
	"github.com/bethropolis/fencedit/internal/utils"
)

// clipboardTimeout bounds clipboard access from Trigger, which has no context.
const clipboardTimeout = 2 * time.Second

var commentPrefixes = map[string]string{
	"py":     "#",
	"python": "#",
	"sh":     "#",
	"bash":   "#",
	"shell":  "#",
	"rb":     "#",
	"ruby":   "#",
	"toml":   "#",
	"yaml":   "#",
	"yml":    "#",
	"lua":    "--",
	"sql":    "--",
	"hs":     "--",
	"css":    "/*",
}

// CommentPrefix returns the line comment token for lang.
func CommentPrefix(lang string) string {
	if p, ok := commentPrefixes[strings.ToLower(lang)]; ok {
		return p
	}
	return "//"
}

// Trigger implements Editor. Unknown actions are logged and ignored. A string
// payload for ActionPaste is pasted instead of the clipboard contents; for
// ActionFind it is the search text.
func (m *Model) Trigger(source, actionID string, payload any) {
	if m.disposed {
		return
	}
	logger.DebugTagf("editor", "Trigger %s from %q", actionID, source)

	switch actionID {
	case ActionCopy:
		m.copySelection()
		return
	case ActionFind:
		query, _ := payload.(string)
		m.findNext(query)
		return
	case ActionFindReplace:
		logger.Debugf("Editor: %s not supported by the in-memory editor", actionID)
		return
	case ActionUndo:
		m.Undo()
		return
	case ActionRedo:
		m.Redo()
		return
	}

	if m.opts.ReadOnly {
		return
	}

	before := m.beginChange()
	defer m.endChange(source, before)

	switch actionID {
	case ActionPaste:
		text, ok := payload.(string)
		if !ok {
			text = m.readClipboard()
		}
		if text != "" {
			m.InsertText(source, text)
		}
	case ActionCut:
		m.cutSelection(source)
	case ActionInsertLineAfter:
		m.insertLineAfter()
	case ActionIndentLines:
		m.indentLines()
	case ActionOutdentLines:
		m.outdentLines()
	case ActionCopyLinesDown:
		m.copyLinesDown()
	case ActionCommentLine:
		m.toggleComment()
	default:
		logger.Warnf("Editor: unknown action %q", actionID)
	}
}

func (m *Model) readClipboard() string {
	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()
	text, err := m.clip.ReadText(ctx)
	if err != nil {
		logger.Warnf("Editor: clipboard read failed: %v", err)
		return ""
	}
	return text
}

func (m *Model) writeClipboard(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()
	if err := m.clip.WriteText(ctx, text); err != nil {
		logger.Warnf("Editor: clipboard write failed: %v", err)
	}
}

// primaryRange returns the primary selection, or the whole cursor line
// (including its line break) when the selection is empty.
func (m *Model) primaryRange() (types.Range, bool) {
	sel := m.selections[0].Normalized()
	if !sel.IsEmpty() {
		return sel, false
	}
	line := sel.Start.Line
	if line < len(m.lines)-1 {
		return types.Range{Start: types.Position{Line: line}, End: types.Position{Line: line + 1}}, true
	}
	return types.Range{Start: types.Position{Line: line}, End: types.Position{Line: line, Col: m.lineLen(line)}}, true
}

func (m *Model) copySelection() {
	r, whole := m.primaryRange()
	text := m.textIn(r)
	if whole && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	m.writeClipboard(text)
}

func (m *Model) cutSelection(source string) {
	m.copySelection()
	r, _ := m.primaryRange()
	m.ExecuteEdits(source, []types.TextEdit{{Range: r}})
}

// selectedLines returns the first and last line touched by the selections.
func (m *Model) selectedLines() (int, int) {
	first, last := len(m.lines), -1
	for _, sel := range m.selections {
		sel = sel.Normalized()
		end := sel.End.Line
		if end > sel.Start.Line && sel.End.Col == 0 {
			end--
		}
		first = min(first, sel.Start.Line)
		last = max(last, end)
	}
	return first, last
}

func (m *Model) indentUnit() string {
	width := m.opts.TabWidth
	if width <= 0 {
		width = DefaultTabWidth
	}
	return strings.Repeat(" ", width)
}

// shiftColumns moves selection columns on line by delta, clamping at zero.
func (m *Model) shiftColumns(line, delta int) {
	shift := func(p types.Position) types.Position {
		if p.Line == line {
			p.Col = max(0, p.Col+delta)
		}
		return p
	}
	for i, sel := range m.selections {
		m.selections[i] = types.Range{Start: shift(sel.Start), End: shift(sel.End)}
	}
}

func (m *Model) insertLineAfter() {
	line := m.Cursor().Line
	indent := utils.LeadingWhitespace(m.lines[line])
	lines := make([]string, 0, len(m.lines)+1)
	lines = append(lines, m.lines[:line+1]...)
	lines = append(lines, indent)
	lines = append(lines, m.lines[line+1:]...)
	m.lines = lines
	m.selections = []types.Range{types.Collapse(types.Position{Line: line + 1, Col: utf8.RuneCountInString(indent)})}
}

func (m *Model) indentLines() {
	unit := m.indentUnit()
	first, last := m.selectedLines()
	for i := first; i <= last; i++ {
		if m.lines[i] == "" && first != last {
			continue
		}
		m.lines[i] = unit + m.lines[i]
		m.shiftColumns(i, len(unit))
	}
}

func (m *Model) outdentLines() {
	unit := m.indentUnit()
	first, last := m.selectedLines()
	for i := first; i <= last; i++ {
		line := m.lines[i]
		var cut int
		switch {
		case strings.HasPrefix(line, "\t"):
			cut = 1
		default:
			for cut < len(unit) && cut < len(line) && line[cut] == ' ' {
				cut++
			}
		}
		if cut == 0 {
			continue
		}
		m.lines[i] = line[cut:]
		m.shiftColumns(i, -cut)
	}
}

func (m *Model) copyLinesDown() {
	first, last := m.selectedLines()
	n := last - first + 1
	dup := append([]string(nil), m.lines[first:last+1]...)
	lines := make([]string, 0, len(m.lines)+n)
	lines = append(lines, m.lines[:last+1]...)
	lines = append(lines, dup...)
	lines = append(lines, m.lines[last+1:]...)
	m.lines = lines
	for i, sel := range m.selections {
		sel.Start.Line += n
		sel.End.Line += n
		m.selections[i] = sel
	}
}

// toggleComment comments the selected lines, or uncomments them when every
// non-blank line already carries the prefix.
func (m *Model) toggleComment() {
	prefix := CommentPrefix(m.lang)
	first, last := m.selectedLines()

	commented := true
	for i := first; i <= last; i++ {
		body := strings.TrimLeft(m.lines[i], " \t")
		if body != "" && !strings.HasPrefix(body, prefix) {
			commented = false
			break
		}
	}

	for i := first; i <= last; i++ {
		line := m.lines[i]
		indent := utils.LeadingWhitespace(line)
		body := line[len(indent):]
		if body == "" {
			continue
		}
		if commented {
			stripped := strings.TrimPrefix(body, prefix)
			stripped = strings.TrimPrefix(stripped, " ")
			m.lines[i] = indent + stripped
			m.shiftColumns(i, utf8.RuneCountInString(stripped)-utf8.RuneCountInString(body))
			continue
		}
		m.lines[i] = indent + prefix + " " + body
		m.shiftColumns(i, utf8.RuneCountInString(prefix)+1)
	}
	for i, sel := range m.selections {
		m.selections[i] = types.Range{Start: m.clamp(sel.Start), End: m.clamp(sel.End)}
	}
}
