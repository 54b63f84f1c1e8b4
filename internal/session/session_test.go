package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/fencedit/internal/buffer"
	"github.com/bethropolis/fencedit/internal/clipboard"
	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/fence"
	"github.com/bethropolis/fencedit/internal/types"
)

type editCall struct {
	source string
	edits  []types.TextEdit
}

type triggerCall struct {
	source string
	action string
}

// recordingEditor records every call made to it.
type recordingEditor struct {
	value      string
	selections []types.Range
	edits      []editCall
	triggers   []triggerCall
	disposed   int
}

func (r *recordingEditor) GetValue() string { return r.value }

func (r *recordingEditor) GetSelections() ([]types.Range, bool) {
	return r.selections, r.selections != nil
}

func (r *recordingEditor) ExecuteEdits(source string, edits []types.TextEdit) bool {
	r.edits = append(r.edits, editCall{source: source, edits: edits})
	return true
}

func (r *recordingEditor) Trigger(source, actionID string, _ any) {
	r.triggers = append(r.triggers, triggerCall{source: source, action: actionID})
}

func (r *recordingEditor) Dispose() { r.disposed++ }

type fakeMounter struct {
	ed   *recordingEditor
	seed string
	lang string
	err  error
}

func (f *fakeMounter) Mount(_ editor.Container, text, lang string, _ editor.Options) (editor.Editor, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.seed, f.lang = text, lang
	f.ed.value = text
	return f.ed, nil
}

const scenarioA = "text\n```lua\nprint(1)\n```\nmore text\n"

func locate(t *testing.T, doc string, line int) fence.Block {
	t.Helper()
	block, ok := fence.Locate(doc, types.Position{Line: line}, fence.ClosePolicyLenient)
	require.True(t, ok)
	return block
}

func begin(t *testing.T, doc string, line int, onCommit CommitFunc, options ...Option) (*Session, *recordingEditor) {
	t.Helper()
	block := locate(t, doc, line)
	ed := &recordingEditor{}
	s, err := Begin(&fakeMounter{ed: ed}, editor.Container{}, block, block.Body, block.Lang(), editor.Options{}, onCommit, options...)
	require.NoError(t, err)
	return s, ed
}

func TestBeginSeedsEditor(t *testing.T) {
	block := locate(t, scenarioA, 2)
	m := &fakeMounter{ed: &recordingEditor{}}

	s, err := Begin(m, editor.Container{}, block, block.Body, block.Lang(), editor.Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "print(1)", m.seed)
	assert.Equal(t, "lua", m.lang)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, block, s.Block())
}

func TestBeginMountError(t *testing.T) {
	block := locate(t, scenarioA, 2)
	_, err := Begin(&fakeMounter{err: errors.New("no editor")}, editor.Container{}, block, block.Body, "lua", editor.Options{}, nil)
	require.Error(t, err)
}

func TestCloseWritesBackScenarioB(t *testing.T) {
	doc := buffer.NewDocument(scenarioA)
	s, ed := begin(t, scenarioA, 2, WriteTo(doc))

	ed.value = "print(2)"
	require.NoError(t, s.Close())

	assert.Equal(t, "text\n```lua\nprint(2)\n```\nmore text\n", doc.Text())
	assert.Equal(t, 1, ed.disposed)
}

func TestCloseUnchangedIsByteExact(t *testing.T) {
	doc := "a\r\n~~~~ py \r\nx = 1\n\r\n~~~~~\r\nb"
	w := buffer.NewDocument(doc)
	var got Commit
	s, _ := begin(t, doc, 2, func(c Commit) error {
		got = c
		return WriteTo(w)(c)
	})

	require.NoError(t, s.Close())
	assert.False(t, got.Changed)
	assert.Equal(t, got.Block.Span, got.Replacement)
	assert.Equal(t, doc, w.Text())
}

func TestCloseCommitsExactlyOnce(t *testing.T) {
	calls := 0
	s, ed := begin(t, scenarioA, 2, func(Commit) error {
		calls++
		return nil
	})

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, ed.disposed)
	assert.True(t, s.Closed())
}

func TestCommitTwice(t *testing.T) {
	s, ed := begin(t, scenarioA, 2, nil)
	ed.value = "x"

	got, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = s.Commit()
	assert.ErrorIs(t, err, ErrCommitted)
}

func TestCloseAfterCommitUsesCommittedText(t *testing.T) {
	var got Commit
	s, ed := begin(t, scenarioA, 2, func(c Commit) error {
		got = c
		return nil
	})
	ed.value = "first"
	_, err := s.Commit()
	require.NoError(t, err)
	ed.value = "second"

	require.NoError(t, s.Close())
	assert.Equal(t, "first", got.FinalText)
}

func TestCloseReportsWriterError(t *testing.T) {
	s, ed := begin(t, scenarioA, 2, func(Commit) error { return buffer.ErrLineRange })
	ed.value = "y"

	err := s.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, buffer.ErrLineRange)
	assert.Equal(t, 1, ed.disposed)
}

func TestReplacementReindents(t *testing.T) {
	doc := "- item\n  ```go\n  x := 1\n\n  ```\n"
	block := locate(t, doc, 2)
	seed, reindent := Seed(block, true)
	require.True(t, reindent)
	assert.Equal(t, "x := 1\n", seed)

	ed := &recordingEditor{}
	w := buffer.NewDocument(doc)
	s, err := Begin(&fakeMounter{ed: ed}, editor.Container{}, block, seed, "go", editor.Options{}, WriteTo(w), WithReindent(reindent))
	require.NoError(t, err)

	assert.Equal(t, block.Span, s.Replacement(seed))

	ed.value = "x := 2\ny := 3"
	require.NoError(t, s.Close())
	assert.Equal(t, "- item\n  ```go\n  x := 2\n  y := 3\n  ```\n", w.Text())
}

func TestReindentKeepsUntouchedWhitespaceLines(t *testing.T) {
	doc := "- item\n  ```py\n  x\n  \n  y\n  ```\n"
	block := locate(t, doc, 2)
	seed, reindent := Seed(block, true)

	ed := &recordingEditor{}
	w := buffer.NewDocument(doc)
	s, err := Begin(&fakeMounter{ed: ed}, editor.Container{}, block, seed, "py", editor.Options{}, WriteTo(w), WithReindent(reindent))
	require.NoError(t, err)

	ed.value = strings.Replace(seed, "x", "z", 1)
	require.NoError(t, s.Close())
	assert.Equal(t, "- item\n  ```py\n  z\n  \n  y\n  ```\n", w.Text())
}

func TestSeedWithoutDedent(t *testing.T) {
	block := locate(t, "  ```\n  a\n  ```", 1)
	seed, reindent := Seed(block, false)
	assert.False(t, reindent)
	assert.Equal(t, "  a", seed)
}

func TestPasteScenarioD(t *testing.T) {
	clip := clipboard.NewMemory("X")
	s, ed := begin(t, scenarioA, 2, nil, WithClipboard(clip))
	sel := types.Range{Start: types.Position{Line: 5, Col: 5}, End: types.Position{Line: 5, Col: 5}}
	ed.selections = []types.Range{sel}

	s.Paste(context.Background())

	require.Len(t, ed.edits, 1)
	assert.Equal(t, PasteSource, ed.edits[0].source)
	assert.Equal(t, []types.TextEdit{{Range: sel, Text: "X", ForceMoveMarkers: true}}, ed.edits[0].edits)
	assert.Empty(t, ed.triggers)
}

func TestPasteOneEditPerSelection(t *testing.T) {
	s, ed := begin(t, scenarioA, 2, nil, WithClipboard(clipboard.NewMemory("ab")))
	ed.selections = []types.Range{
		types.Collapse(types.Position{Line: 0, Col: 1}),
		{Start: types.Position{Line: 1}, End: types.Position{Line: 1, Col: 3}},
	}

	s.Paste(context.Background())

	require.Len(t, ed.edits, 1)
	assert.Len(t, ed.edits[0].edits, 2)
}

func TestPasteFallsBackOnEmptyOrError(t *testing.T) {
	failing := clipboard.NewMemory("X")
	failing.Err = errors.New("denied")

	for name, clip := range map[string]clipboard.Reader{
		"empty": clipboard.NewMemory(""),
		"error": failing,
	} {
		t.Run(name, func(t *testing.T) {
			s, ed := begin(t, scenarioA, 2, nil, WithClipboard(clip))
			ed.selections = []types.Range{types.Collapse(types.Position{})}

			s.Paste(context.Background())

			assert.Empty(t, ed.edits)
			require.Len(t, ed.triggers, 1)
			assert.Equal(t, editor.ActionPaste, ed.triggers[0].action)
		})
	}
}

func TestPasteCancelledContextFallsBack(t *testing.T) {
	s, ed := begin(t, scenarioA, 2, nil, WithClipboard(clipboard.NewMemory("X")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Paste(ctx)
	assert.Empty(t, ed.edits)
	assert.Len(t, ed.triggers, 1)
}

func TestHandleKey(t *testing.T) {
	s, ed := begin(t, scenarioA, 2, nil, WithClipboard(clipboard.NewMemory("X")))
	ed.selections = []types.Range{types.Collapse(types.Position{})}
	ctx := context.Background()

	assert.True(t, s.HandleKey(ctx, tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl)))
	assert.True(t, s.HandleKey(ctx, tcell.NewEventKey(tcell.KeyCtrlUnderscore, 0, tcell.ModCtrl)))
	assert.True(t, s.HandleKey(ctx, tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl)))
	assert.False(t, s.HandleKey(ctx, tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)))
	assert.False(t, s.HandleKey(ctx, tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)))

	assert.Equal(t, []triggerCall{
		{action: editor.ActionCopyLinesDown},
		{action: editor.ActionCommentLine},
	}, ed.triggers)
	assert.Len(t, ed.edits, 1, "ctrl+v goes through the paste override")
}

func TestEndToEndWithModel(t *testing.T) {
	doc := buffer.NewDocument(scenarioA)
	block := locate(t, scenarioA, 2)
	clip := clipboard.NewMemory("-- hi\n")

	s, err := Begin(editor.ModelMounter{}, editor.Container{}, block, block.Body, block.Lang(), editor.Options{}, WriteTo(doc), WithClipboard(clip))
	require.NoError(t, err)

	s.Paste(context.Background())
	require.NoError(t, s.Close())
	assert.Equal(t, "text\n```lua\n-- hi\nprint(1)\n```\nmore text\n", doc.Text())
}
