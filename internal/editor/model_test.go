package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/fencedit/internal/types"
)

func pos(line, col int) types.Position {
	return types.Position{Line: line, Col: col}
}

func rng(sl, sc, el, ec int) types.Range {
	return types.Range{Start: pos(sl, sc), End: pos(el, ec)}
}

func TestModelValueIsVerbatim(t *testing.T) {
	for _, text := range []string{"", "a", "a\n", "a\r\nb", "\n\n"} {
		m := NewModel(text, "go", Options{}, nil)
		assert.Equal(t, text, m.GetValue())
	}
}

func TestExecuteEditsForceMoveMarkers(t *testing.T) {
	m := NewModel("print(1)", "lua", Options{}, nil)
	m.SetSelections(types.Collapse(pos(0, 5)))

	require.True(t, m.ExecuteEdits("test", []types.TextEdit{{Range: types.Collapse(pos(0, 5)), Text: "xy", ForceMoveMarkers: true}}))
	assert.Equal(t, "printxy(1)", m.GetValue())
	assert.Equal(t, pos(0, 7), m.Cursor())

	require.True(t, m.ExecuteEdits("test", []types.TextEdit{{Range: types.Collapse(pos(0, 7)), Text: "z"}}))
	assert.Equal(t, "printxyz(1)", m.GetValue())
	assert.Equal(t, pos(0, 7), m.Cursor(), "cursor stays put without force")
}

func TestExecuteEditsMultiLine(t *testing.T) {
	m := NewModel("ab\ncd\nef", "", Options{}, nil)
	m.SetSelections(types.Collapse(pos(2, 2)))

	require.True(t, m.ExecuteEdits("test", []types.TextEdit{{Range: rng(0, 1, 2, 1), Text: "X\nY"}}))
	assert.Equal(t, "aX\nYf", m.GetValue())
	assert.Equal(t, pos(1, 2), m.Cursor())
}

func TestInsertTextAtEverySelection(t *testing.T) {
	m := NewModel("abc", "", Options{}, nil)
	m.SetSelections(types.Collapse(pos(0, 0)), types.Collapse(pos(0, 2)))

	require.True(t, m.InsertText("test", "-"))
	assert.Equal(t, "-ab-c", m.GetValue())

	sels, ok := m.GetSelections()
	require.True(t, ok)
	assert.Equal(t, []types.Range{types.Collapse(pos(0, 1)), types.Collapse(pos(0, 4))}, sels)
}

func TestReadOnlyRejectsEdits(t *testing.T) {
	m := NewModel("abc", "", Options{ReadOnly: true}, nil)
	assert.False(t, m.ExecuteEdits("test", []types.TextEdit{{Range: types.Collapse(pos(0, 0)), Text: "x"}}))
	m.Trigger("test", ActionPaste, "x")
	assert.Equal(t, "abc", m.GetValue())
}

func TestDeleteBackwardJoinsLines(t *testing.T) {
	m := NewModel("ab\ncd", "", Options{}, nil)
	m.SetSelections(types.Collapse(pos(1, 0)))

	require.True(t, m.DeleteBackward("test"))
	assert.Equal(t, "abcd", m.GetValue())
	assert.Equal(t, pos(0, 2), m.Cursor())
}

func TestDeleteForwardAtEndIsNoop(t *testing.T) {
	m := NewModel("ab", "", Options{}, nil)
	m.MoveToLineEnd()

	m.DeleteForward("test")
	assert.Equal(t, "ab", m.GetValue())
}

func TestMoveCursorClamps(t *testing.T) {
	m := NewModel("héllo\nx", "", Options{}, nil)
	m.MoveCursor(0, 3)
	assert.Equal(t, pos(0, 3), m.Cursor())
	m.MoveCursor(1, 0)
	assert.Equal(t, pos(1, 1), m.Cursor())
	m.MoveCursor(5, 0)
	assert.Equal(t, pos(1, 1), m.Cursor())
	m.MoveCursor(0, -2)
	assert.Equal(t, pos(0, 5), m.Cursor())
	m.MoveToLineStart()
	assert.Equal(t, pos(0, 0), m.Cursor())
}

func TestDisposeDropsSelections(t *testing.T) {
	m := NewModel("x", "", Options{}, nil)
	m.Dispose()
	_, ok := m.GetSelections()
	assert.False(t, ok)
	assert.True(t, m.Disposed())
}

func TestModelMounter(t *testing.T) {
	ed, err := ModelMounter{}.Mount(Container{Width: 10, Height: 5}, "seed", "go", Options{})
	require.NoError(t, err)
	assert.Equal(t, "seed", ed.GetValue())
}

func TestUndoRedo(t *testing.T) {
	m := NewModel("ab", "", Options{}, nil)
	assert.False(t, m.Undo(), "nothing to undo after seeding")

	m.SetSelections(types.Collapse(pos(0, 2)))
	m.InsertText("test", "c")
	m.Trigger("test", ActionIndentLines, nil)
	require.Equal(t, "    abc", m.GetValue())

	require.True(t, m.Undo())
	assert.Equal(t, "abc", m.GetValue())
	assert.Equal(t, pos(0, 3), m.Cursor())
	require.True(t, m.Undo())
	assert.Equal(t, "ab", m.GetValue())
	assert.False(t, m.Undo())

	require.True(t, m.Redo())
	assert.Equal(t, "abc", m.GetValue())

	// A new change drops the redo tail.
	m.InsertText("test", "!")
	assert.False(t, m.Redo())
	assert.Equal(t, "abc!", m.GetValue())
}

func TestPasteUndoesAsOneChange(t *testing.T) {
	m := NewModel("x", "", Options{}, nil)
	m.Trigger("test", ActionPaste, "yz")
	require.Equal(t, "yzx", m.GetValue())

	m.Trigger("test", ActionUndo, nil)
	assert.Equal(t, "x", m.GetValue())
	m.Trigger("test", ActionRedo, nil)
	assert.Equal(t, "yzx", m.GetValue())
}

func TestHistoryLimit(t *testing.T) {
	h := newHistory(2)
	for i := 0; i < 3; i++ {
		h.record(change{source: "t", before: snapshot{lines: []string{string(rune('a' + i))}}})
	}
	s, ok := h.undo()
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, s.lines)
	s, ok = h.undo()
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, s.lines)
	_, ok = h.undo()
	assert.False(t, ok)
}
