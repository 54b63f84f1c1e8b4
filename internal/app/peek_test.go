package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/fencedit/internal/buffer"
	"github.com/bethropolis/fencedit/internal/config"
	"github.com/bethropolis/fencedit/internal/types"
)

func TestFindLinks(t *testing.T) {
	assert.Equal(t, []linkSpan{
		{Text: "a.go", Start: 4, End: 12},
		{Text: "b|alias", Start: 13, End: 24},
	}, findLinks("see [[a.go]] [[b|alias]]"))
	assert.Empty(t, findLinks("[[]] [x] [[open"))
	assert.Equal(t, []linkSpan{{Text: "y", Start: 4, End: 9}}, findLinks("[[x [[y]]"))
	assert.Equal(t, []linkSpan{{Text: "ü", Start: 2, End: 7}}, findLinks("é [[ü]]"))

	l, ok := linkAt("see [[a.go]]", 11)
	require.True(t, ok)
	assert.Equal(t, "a.go", l.Text)
	_, ok = linkAt("see [[a.go]]", 12)
	assert.False(t, ok)
}

func TestVaultPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes", "n.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	root, source, err := VaultPaths(file, dir)
	require.NoError(t, err)
	assert.Equal(t, "notes/n.md", source)
	assert.True(t, filepath.IsAbs(root))

	root, source, err = VaultPaths(file, "")
	require.NoError(t, err)
	assert.Equal(t, "n.md", source)
	assert.Equal(t, "notes", filepath.Base(root))

	_, _, err = VaultPaths(file, filepath.Join(dir, "other"))
	assert.Error(t, err)
}

func newPeek(t *testing.T, doc string) *peekUI {
	t.Helper()
	vault := memoryfs.New()
	require.NoError(t, vault.WriteFile("a.go", []byte("package a\n\nfunc A() {}\n"), 0o600))
	require.NoError(t, vault.WriteFile("b.md", []byte("# b\n"), 0o600))
	require.NoError(t, vault.WriteFile("note.md", []byte(doc), 0o600))

	cfg := config.NewDefaultConfig()
	cfg.Editor.LineNumbers = false
	cfg.Preview.Extensions = []string{"go"}
	cfg.Preview.Width, cfg.Preview.Height, cfg.Preview.Gap = 20, 5, 1

	a := NewWithDocument(cfg, buffer.NewDocument(doc))
	p, err := newPeekUI(a, newTerminal(t, 40, 20), vault, "note.md")
	require.NoError(t, err)
	t.Cleanup(p.close)
	return p
}

func motion(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func TestPeekHoverShowsPreview(t *testing.T) {
	p := newPeek(t, "see [[a.go]] and [[b]]\nsecond line\n")

	require.True(t, p.handle(motion(6, 0)))
	view := p.bridge.Current()
	require.NotNil(t, view)
	assert.Equal(t, types.Point{X: 5, Y: 2}, view.Origin)
	assert.Equal(t, "go", view.Ext)
	require.NotNil(t, p.popover)
	assert.Same(t, view, p.popover.View())

	// Moving within the same link keeps the view.
	p.handle(motion(9, 0))
	assert.Same(t, view, p.bridge.Current())

	// Moving onto the preview keeps it open.
	p.handle(motion(10, 4))
	assert.Same(t, view, p.bridge.Current())

	// Leaving both dismisses it.
	p.handle(motion(30, 10))
	assert.Nil(t, p.bridge.Current())
	assert.True(t, view.Disposed())
	p.draw()
}

func TestPeekHoverIgnoresDisallowedExtension(t *testing.T) {
	p := newPeek(t, "see [[a.go]] and [[b]]\n")

	p.handle(motion(19, 0))
	assert.Nil(t, p.bridge.Current())
	require.NotNil(t, p.popover)
	assert.Nil(t, p.popover.View())
}

func TestPeekQuitKeys(t *testing.T) {
	p := newPeek(t, "x\n")
	assert.False(t, p.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, p.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, p.handle(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.False(t, p.handle(nil))
}
