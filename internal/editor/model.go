package editor

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/fencedit/internal/clipboard"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/types"
	"github.com/bethropolis/fencedit/internal/utils"
)

// DefaultTabWidth is the indent unit used when Options.TabWidth is unset.
const DefaultTabWidth = 4

// Model is an in-memory Editor: lines of text, a set of selections, and the
// editor actions the shortcut table dispatches to.
type Model struct {
	lines      []string
	selections []types.Range
	lang       string
	opts       Options
	clip       clipboard.Clipboard
	disposed   bool

	history     *history
	changeDepth int
}

// NewModel creates a model seeded with text. A nil clipboard gets an
// in-memory one.
func NewModel(text, lang string, opts Options, clip clipboard.Clipboard) *Model {
	if clip == nil {
		clip = clipboard.NewMemory("")
	}
	m := &Model{lang: lang, opts: opts, clip: clip, history: newHistory(DefaultMaxHistory)}
	m.lines = strings.Split(text, "\n")
	m.selections = []types.Range{types.Collapse(types.Position{})}
	return m
}

// ModelMounter mounts Models. It is the in-process editor used by the TUI
// and by previews.
type ModelMounter struct {
	Clipboard clipboard.Clipboard
}

// Mount implements Mounter.
func (mm ModelMounter) Mount(_ Container, text, lang string, opts Options) (Editor, error) {
	return NewModel(text, lang, opts, mm.Clipboard), nil
}

// SetValue replaces the whole text and resets the cursor to the start. The
// replacement can be undone.
func (m *Model) SetValue(text string) {
	before := m.beginChange()
	defer m.endChange("setValue", before)
	m.lines = strings.Split(text, "\n")
	m.selections = []types.Range{types.Collapse(types.Position{})}
}

// GetValue implements Editor.
func (m *Model) GetValue() string {
	return strings.Join(m.lines, "\n")
}

// Language returns the language the model was mounted with.
func (m *Model) Language() string { return m.lang }

// Options returns the mount options.
func (m *Model) Options() Options { return m.opts }

// ReadOnly reports whether edits are rejected.
func (m *Model) ReadOnly() bool { return m.opts.ReadOnly }

// LineCount returns the number of lines; never less than one.
func (m *Model) LineCount() int { return len(m.lines) }

// Line returns line i, or "" when out of range.
func (m *Model) Line(i int) string {
	if i < 0 || i >= len(m.lines) {
		return ""
	}
	return m.lines[i]
}

// GetSelections implements Editor.
func (m *Model) GetSelections() ([]types.Range, bool) {
	if m.disposed || len(m.selections) == 0 {
		return nil, false
	}
	out := make([]types.Range, len(m.selections))
	copy(out, m.selections)
	return out, true
}

// SetSelections replaces the selections. Positions are clamped.
func (m *Model) SetSelections(selections ...types.Range) {
	if len(selections) == 0 {
		return
	}
	m.selections = m.selections[:0]
	for _, sel := range selections {
		m.selections = append(m.selections, types.Range{Start: m.clamp(sel.Start), End: m.clamp(sel.End)})
	}
}

// Cursor returns the active end of the primary selection.
func (m *Model) Cursor() types.Position {
	if len(m.selections) == 0 {
		return types.Position{}
	}
	return m.selections[0].End
}

// Dispose implements Editor.
func (m *Model) Dispose() {
	m.disposed = true
	m.selections = nil
}

// Disposed reports whether Dispose was called.
func (m *Model) Disposed() bool { return m.disposed }

func (m *Model) lineLen(i int) int {
	return utf8.RuneCountInString(m.lines[i])
}

func (m *Model) clamp(p types.Position) types.Position {
	if p.Line < 0 {
		return types.Position{}
	}
	if p.Line >= len(m.lines) {
		last := len(m.lines) - 1
		return types.Position{Line: last, Col: m.lineLen(last)}
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := m.lineLen(p.Line); p.Col > n {
		p.Col = n
	}
	return p
}

// textIn returns the text covered by r.
func (m *Model) textIn(r types.Range) string {
	r = r.Normalized()
	s, e := m.clamp(r.Start), m.clamp(r.End)
	first := m.lines[s.Line]
	sb := utils.RuneIndexToByteOffset(first, s.Col)
	if s.Line == e.Line {
		return first[sb:utils.RuneIndexToByteOffset(first, e.Col)]
	}
	parts := []string{first[sb:]}
	parts = append(parts, m.lines[s.Line+1:e.Line]...)
	last := m.lines[e.Line]
	parts = append(parts, last[:utils.RuneIndexToByteOffset(last, e.Col)])
	return strings.Join(parts, "\n")
}

// replace swaps the text in r for text and returns the end of the new text.
func (m *Model) replace(r types.Range, text string) types.Position {
	r = r.Normalized()
	s, e := m.clamp(r.Start), m.clamp(r.End)

	first, last := m.lines[s.Line], m.lines[e.Line]
	head := first[:utils.RuneIndexToByteOffset(first, s.Col)]
	tail := last[utils.RuneIndexToByteOffset(last, e.Col):]

	inserted := strings.Split(text, "\n")
	inserted[0] = head + inserted[0]
	n := len(inserted) - 1
	end := types.Position{Line: s.Line + n, Col: utf8.RuneCountInString(inserted[n])}
	inserted[n] += tail

	lines := make([]string, 0, len(m.lines)-(e.Line-s.Line)+n)
	lines = append(lines, m.lines[:s.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, m.lines[e.Line+1:]...)
	m.lines = lines
	return end
}

// mapPosition moves p across an edit that replaced [s,e] and now ends at ne.
func mapPosition(p, s, e, ne types.Position, force bool) types.Position {
	switch {
	case p.Before(s):
		return p
	case e.Before(p):
		if p.Line == e.Line {
			return types.Position{Line: ne.Line, Col: ne.Col + p.Col - e.Col}
		}
		return types.Position{Line: p.Line + ne.Line - e.Line, Col: p.Col}
	case force, p == e && s != e:
		return ne
	default:
		return s
	}
}

// ExecuteEdits implements Editor. Edits must not overlap; they are applied
// from the bottom of the document up so earlier ranges stay valid.
func (m *Model) ExecuteEdits(source string, edits []types.TextEdit) bool {
	if m.disposed || m.opts.ReadOnly {
		logger.Debugf("Editor: rejected %d edit(s) from %q (read-only or disposed)", len(edits), source)
		return false
	}
	if len(edits) == 0 {
		return true
	}

	before := m.beginChange()
	defer m.endChange(source, before)

	ordered := make([]types.TextEdit, len(edits))
	copy(ordered, edits)
	for i := range ordered {
		ordered[i].Range = ordered[i].Range.Normalized()
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[j].Range.Start.Before(ordered[i].Range.Start)
	})

	for _, edit := range ordered {
		s, e := m.clamp(edit.Range.Start), m.clamp(edit.Range.End)
		ne := m.replace(types.Range{Start: s, End: e}, edit.Text)
		for i, sel := range m.selections {
			m.selections[i] = types.Range{
				Start: mapPosition(sel.Start, s, e, ne, edit.ForceMoveMarkers),
				End:   mapPosition(sel.End, s, e, ne, edit.ForceMoveMarkers),
			}
		}
	}
	logger.Debugf("Editor: applied %d edit(s) from %q", len(edits), source)
	return true
}

// InsertText replaces every selection with text, leaving the cursors after it.
func (m *Model) InsertText(source, text string) bool {
	edits := make([]types.TextEdit, 0, len(m.selections))
	for _, sel := range m.selections {
		edits = append(edits, types.TextEdit{Range: sel, Text: text, ForceMoveMarkers: true})
	}
	return m.ExecuteEdits(source, edits)
}

func (m *Model) prev(p types.Position) types.Position {
	if p.Col > 0 {
		return types.Position{Line: p.Line, Col: p.Col - 1}
	}
	if p.Line > 0 {
		return types.Position{Line: p.Line - 1, Col: m.lineLen(p.Line - 1)}
	}
	return p
}

func (m *Model) next(p types.Position) types.Position {
	if p.Col < m.lineLen(p.Line) {
		return types.Position{Line: p.Line, Col: p.Col + 1}
	}
	if p.Line < len(m.lines)-1 {
		return types.Position{Line: p.Line + 1}
	}
	return p
}

// DeleteBackward deletes each selection, or the character before each cursor.
func (m *Model) DeleteBackward(source string) bool {
	return m.deleteAround(source, m.prev)
}

// DeleteForward deletes each selection, or the character after each cursor.
func (m *Model) DeleteForward(source string) bool {
	return m.deleteAround(source, m.next)
}

func (m *Model) deleteAround(source string, step func(types.Position) types.Position) bool {
	edits := make([]types.TextEdit, 0, len(m.selections))
	for _, sel := range m.selections {
		r := sel
		if r.IsEmpty() {
			r = types.Range{Start: sel.End, End: step(sel.End)}
		}
		if r.IsEmpty() {
			continue
		}
		edits = append(edits, types.TextEdit{Range: r})
	}
	return m.ExecuteEdits(source, edits)
}

// MoveCursor moves the primary cursor and collapses all selections into it.
func (m *Model) MoveCursor(deltaLine, deltaCol int) {
	pos := m.Cursor()
	if deltaLine != 0 {
		pos.Line += deltaLine
	}
	for ; deltaCol < 0; deltaCol++ {
		pos = m.prev(m.clamp(pos))
	}
	for ; deltaCol > 0; deltaCol-- {
		pos = m.next(m.clamp(pos))
	}
	m.selections = []types.Range{types.Collapse(m.clamp(pos))}
}

// MoveToLineStart puts the cursor at column 0.
func (m *Model) MoveToLineStart() {
	m.selections = []types.Range{types.Collapse(types.Position{Line: m.Cursor().Line})}
}

// MoveToLineEnd puts the cursor after the last character of its line.
func (m *Model) MoveToLineEnd() {
	line := m.Cursor().Line
	m.selections = []types.Range{types.Collapse(types.Position{Line: line, Col: m.lineLen(line)})}
}
