package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/event"
	"github.com/bethropolis/fencedit/internal/input"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/preview"
	"github.com/bethropolis/fencedit/internal/statusbar"
	"github.com/bethropolis/fencedit/internal/tui"
	"github.com/bethropolis/fencedit/internal/types"
)

const (
	peekHint     = "hover a [[link]] to preview | q quit"
	wheelLines   = 3
	peekLanguage = "markdown"
)

// VaultPaths returns the absolute vault root and the slash-separated path of
// filePath inside it. An empty vaultDir means the directory of filePath.
func VaultPaths(filePath, vaultDir string) (root, rel string, err error) {
	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", filePath, err)
	}
	if vaultDir == "" {
		vaultDir = filepath.Dir(absFile)
	}
	root, err = filepath.Abs(vaultDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve vault %s: %w", vaultDir, err)
	}
	rel, err = filepath.Rel(root, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%s is not inside vault %s", filePath, vaultDir)
	}
	return root, filepath.ToSlash(rel), nil
}

// PeekFile runs Peek over the app's document with the vault rooted at
// vaultDir.
func (a *App) PeekFile(ui *tui.TUI, vaultDir string) error {
	root, source, err := VaultPaths(a.filePath, vaultDir)
	if err != nil {
		return err
	}
	return a.Peek(ui, os.DirFS(root), source)
}

// peekUI shows the document read-only and previews hovered links.
type peekUI struct {
	app        *App
	ui         *tui.TUI
	sourcePath string
	widget     *tui.Widget
	bridge     *preview.Bridge
	popover    *tui.Popover
	statusBar  *statusbar.StatusBar
	input      *input.InputProcessor

	hovered *types.Rect
	cleanup []func()
}

// Peek runs the read-only link preview UI until the user quits. sourcePath
// is the document's path inside vault.
func (a *App) Peek(ui *tui.TUI, vault fs.FS, sourcePath string) error {
	p, err := newPeekUI(a, ui, vault, sourcePath)
	if err != nil {
		return err
	}
	defer p.close()

	for {
		p.draw()
		if !p.handle(ui.PollEvent()) {
			return nil
		}
	}
}

func newPeekUI(a *App, ui *tui.TUI, vault fs.FS, sourcePath string) (*peekUI, error) {
	width, height := ui.Size()
	area := editArea(width, height, a.cfg.Editor.StatusBarHeight)

	opts := a.cfg.EditorOptions()
	opts.ReadOnly = true
	mounter := tui.WidgetMounter{Clipboard: a.clipboard}
	ed, err := mounter.Mount(editor.Container{Width: area.Width, Height: area.Height}, a.doc.Text(), peekLanguage, opts)
	if err != nil {
		return nil, err
	}

	p := &peekUI{
		app:        a,
		ui:         ui,
		sourcePath: sourcePath,
		widget:     ed.(*tui.Widget),
		bridge:     preview.NewBridge(mounter, vault, a.cfg.Preview, a.cfg.EditorOptions()),
		statusBar:  statusbar.New(statusbar.ConfigFromTheme(ui.Theme())),
		input:      input.NewInputProcessor(),
	}
	p.bridge.Resize(area.Height)
	p.statusBar.SetFileInfo(a.filePath, false)
	p.statusBar.SetLabel("peek")
	p.statusBar.SetHint(peekHint)

	bridgeID := p.bridge.Subscribe(a.events)
	hoverID := a.events.Subscribe(event.TypeHoverLink, p.handleHoverLink)
	noticeOff := statusHandlers{statusBar: p.statusBar}.subscribe(a.events)
	p.cleanup = append(p.cleanup,
		func() { a.events.Unsubscribe(bridgeID) },
		func() { a.events.Unsubscribe(hoverID) },
		noticeOff,
		p.bridge.Dismiss,
		p.widget.Dispose,
	)
	return p, nil
}

func (p *peekUI) close() {
	for _, fn := range p.cleanup {
		fn()
	}
}

// handleHoverLink opens a popover surface for the hovered link. The bridge
// fills it in when the link resolves to an allowed file.
func (p *peekUI) handleHoverLink(e event.Event) bool {
	data, ok := e.Data.(event.HoverLinkData)
	if !ok {
		return false
	}
	p.popover = &tui.Popover{}
	shown := p.app.events.Dispatch(event.TypeSurfaceCreated, event.SurfaceCreatedData{
		Kind:    event.SurfaceHoverPopover,
		Surface: p.popover,
		Link:    data.Link,
	})
	if !shown {
		logger.DebugTagf("preview", "Peek: no preview for %q", data.Link.LinkText)
	}
	return true
}

// dismiss closes the preview and forgets the hovered link.
func (p *peekUI) dismiss() {
	p.hovered = nil
	p.bridge.Dismiss()
	if p.popover != nil {
		p.popover.Clear()
	}
}

// handle processes one terminal event and reports whether the loop goes on.
func (p *peekUI) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return false

	case *tcell.EventResize:
		p.ui.Screen().Sync()
		width, height := p.ui.Size()
		area := editArea(width, height, p.app.cfg.Editor.StatusBarHeight)
		p.widget.SetArea(area)
		p.bridge.Resize(area.Height)
		p.dismiss()

	case *tcell.EventInterrupt:
		if data, ok := ev.Data().(event.NoticeData); ok {
			p.app.events.Dispatch(event.TypeNotice, data)
		}

	case *tcell.EventMouse:
		p.handleMouse(ev)

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return false
		}
		action := p.input.ProcessEvent(ev)
		if action.Action == input.ActionClose {
			return false
		}
		if p.widget.Apply(action) {
			p.dismiss()
		}
	}
	return true
}

func (p *peekUI) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		p.scroll(-wheelLines)
		return
	case ev.Buttons()&tcell.WheelDown != 0:
		p.scroll(wheelLines)
		return
	}

	pointer := types.Point{X: x, Y: y}
	pos, ok := p.widget.PositionAt(x, y)
	if !ok {
		p.leave(pointer)
		return
	}
	link, ok := linkAt(p.widget.Line(pos.Line), pos.Col)
	if !ok {
		p.leave(pointer)
		return
	}

	anchor := p.widget.CellRect(pos.Line, link.Start, link.End)
	if p.hovered != nil && *p.hovered == anchor {
		return
	}
	p.dismiss()
	p.hovered = &anchor
	p.app.events.Dispatch(event.TypeHoverLink, event.HoverLinkData{Link: event.HoverLink{
		LinkText:   link.Text,
		SourcePath: p.sourcePath,
		Anchor:     anchor,
		Pointer:    pointer,
	}})
}

// leave dismisses the preview unless the pointer moved onto it.
func (p *peekUI) leave(pointer types.Point) {
	if p.hovered == nil {
		return
	}
	if v := p.bridge.Current(); v != nil && v.Bounds().Contains(pointer) {
		return
	}
	p.dismiss()
}

func (p *peekUI) scroll(lines int) {
	p.widget.MoveCursor(lines, 0)
	p.widget.ScrollToCursor()
	p.dismiss()
}

func (p *peekUI) draw() {
	screen := p.ui.Screen()
	width, height := p.ui.Size()

	p.statusBar.SetCursorInfo(p.widget.Cursor())

	p.ui.Clear()
	p.widget.Draw(screen, p.ui.Theme(), false)
	if p.popover != nil {
		p.popover.Draw(screen, p.ui.Theme())
	}
	p.statusBar.Draw(screen, width, height)
	p.ui.Show()
}
