package app

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/event"
	"github.com/bethropolis/fencedit/internal/input"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/session"
	"github.com/bethropolis/fencedit/internal/statusbar"
	"github.com/bethropolis/fencedit/internal/tui"
	"github.com/bethropolis/fencedit/internal/types"
)

const editHint = "Esc close & save | Ctrl-V paste"

// editArea is the screen above the status bar.
func editArea(width, height, statusBarHeight int) types.Rect {
	return types.Rect{Width: width, Height: max(0, height-statusBarHeight)}
}

// editUI drives a terminal editor widget for one session.
type editUI struct {
	app       *App
	ui        *tui.TUI
	statusBar *statusbar.StatusBar
	input     *input.InputProcessor

	sess   *session.Session
	widget *tui.Widget
}

// EditInTerminal runs an edit session over the fence containing line inside
// ui. It returns when the user closes the editor.
func (a *App) EditInTerminal(ctx context.Context, ui *tui.TUI, line int) (Result, error) {
	e := &editUI{
		app:       a,
		ui:        ui,
		statusBar: statusbar.New(statusbar.ConfigFromTheme(ui.Theme())),
		input:     input.NewInputProcessor(),
	}
	e.statusBar.SetHint(editHint)

	unsubscribe := statusHandlers{statusBar: e.statusBar}.subscribe(a.events)
	defer unsubscribe()

	// Notices come from the watcher goroutine; hand them to the UI loop.
	notify := func(msg string) {
		if err := ui.Screen().PostEvent(tcell.NewEventInterrupt(event.NoticeData{Message: msg})); err != nil {
			logger.Warnf("App: dropped notice %q: %v", msg, err)
		}
	}

	width, height := ui.Size()
	area := editArea(width, height, a.cfg.Editor.StatusBarHeight)
	container := editor.Container{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}
	mounter := tui.WidgetMounter{Clipboard: a.clipboard}

	return a.editWith(ctx, line, mounter, container, func(s *session.Session) error {
		return e.run(ctx, s)
	}, notify)
}

func (e *editUI) run(ctx context.Context, s *session.Session) error {
	w, ok := s.Editor().(*tui.Widget)
	if !ok {
		return fmt.Errorf("terminal edit needs a widget editor, got %T", s.Editor())
	}
	e.sess, e.widget = s, w

	block := s.Block()
	label := fmt.Sprintf("lines %d-%d", block.StartLine+1, block.EndLine+1)
	if tag := block.Tag(); tag != "" {
		label = tag + " " + label
	}
	e.statusBar.SetLabel(label)

	for {
		e.draw()
		if !e.handle(ctx, e.ui.PollEvent()) {
			return nil
		}
	}
}

// handle processes one terminal event and reports whether the loop goes on.
func (e *editUI) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return false

	case *tcell.EventResize:
		e.ui.Screen().Sync()
		width, height := e.ui.Size()
		e.widget.SetArea(editArea(width, height, e.app.cfg.Editor.StatusBarHeight))

	case *tcell.EventInterrupt:
		if data, ok := ev.Data().(event.NoticeData); ok {
			e.app.events.Dispatch(event.TypeNotice, data)
		}

	case *tcell.EventKey:
		if e.sess.HandleKey(ctx, ev) {
			e.widget.ScrollToCursor()
			return true
		}
		action := e.input.ProcessEvent(ev)
		if action.Action == input.ActionClose {
			return false
		}
		if !e.widget.Apply(action) {
			logger.DebugTagf("input", "App: unhandled key %s", ev.Name())
		}
	}
	return true
}

// draw clears the screen and redraws the widget and status bar.
func (e *editUI) draw() {
	screen := e.ui.Screen()
	width, height := e.ui.Size()

	e.statusBar.SetFileInfo(e.app.filePath, e.widget.GetValue() != e.sess.Seed())
	e.statusBar.SetCursorInfo(e.widget.Cursor())

	e.ui.Clear()
	e.widget.Draw(screen, e.ui.Theme(), true)
	e.statusBar.Draw(screen, width, height)
	e.ui.Show()
}
