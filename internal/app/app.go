// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/bethropolis/fencedit/internal/buffer"
	"github.com/bethropolis/fencedit/internal/clipboard"
	"github.com/bethropolis/fencedit/internal/config"
	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/event"
	"github.com/bethropolis/fencedit/internal/fence"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/session"
	"github.com/bethropolis/fencedit/internal/types"
)

// ErrNotInFence is returned when the requested line is not inside a fence body.
var ErrNotInFence = errors.New("cursor is not in a fence block")

// App ties one loaded document to the editing and preview components.
type App struct {
	cfg       *config.Config
	doc       *buffer.Document
	filePath  string
	events    *event.Manager
	clipboard clipboard.Clipboard

	// notify reports an out-of-band message, such as an external change to
	// the document. It may be called from another goroutine.
	notify func(msg string)
}

// Result describes a finished edit.
type Result struct {
	Commit session.Commit
	// Saved is true when the document was written back to disk.
	Saved bool
	// ExternalChange is true when the file changed on disk during the session.
	ExternalChange bool
}

// New loads filePath and creates an App for it.
func New(cfg *config.Config, filePath string) (*App, error) {
	doc := buffer.NewDocument("")
	if err := doc.Load(filePath); err != nil {
		return nil, err
	}
	return NewWithDocument(cfg, doc), nil
}

// NewWithDocument creates an App over an already loaded document.
func NewWithDocument(cfg *config.Config, doc *buffer.Document) *App {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	a := &App{
		cfg:       cfg,
		doc:       doc,
		filePath:  doc.FilePath(),
		events:    event.NewManager(),
		clipboard: clipboard.New(cfg.Editor.SystemClipboard),
	}
	a.notify = func(msg string) {
		a.events.Dispatch(event.TypeNotice, event.NoticeData{Message: msg})
	}
	return a
}

// Events returns the app's event bus.
func (a *App) Events() *event.Manager { return a.events }

// Document returns the host document.
func (a *App) Document() *buffer.Document { return a.doc }

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Locate finds the fence whose body contains the 0-based line.
func (a *App) Locate(line int) (fence.Block, bool) {
	return fence.Locate(a.doc.Text(), types.Position{Line: line}, a.cfg.Policy())
}

// Scan returns every fence in the document.
func (a *App) Scan() fence.Scan {
	return fence.ScanText(a.doc.Text(), a.cfg.Policy())
}

// Mounter returns the editor mounter for non-TUI edits.
func (a *App) Mounter() editor.Mounter {
	return editor.NewProcessMounter(a.cfg.Editor.Command, "", a.clipboard)
}

// EditWith runs one edit session over the fence containing line. The editor
// is mounted with m into c; loop drives it and returns when the user is done.
// A nil loop closes the session as soon as Mount returns, which suits
// editors that finish inside Mount. The session always commits on close;
// a changed document is saved.
func (a *App) EditWith(ctx context.Context, line int, m editor.Mounter, c editor.Container, loop func(*session.Session) error) (Result, error) {
	return a.editWith(ctx, line, m, c, loop, a.notify)
}

// editWith is EditWith with notify receiving watcher notices. notify is
// called from the watcher goroutine.
func (a *App) editWith(ctx context.Context, line int, m editor.Mounter, c editor.Container, loop func(*session.Session) error, notify func(string)) (Result, error) {
	block, ok := a.Locate(line)
	if !ok {
		return Result{}, ErrNotInFence
	}

	var (
		result  Result
		changed atomic.Bool
	)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if a.filePath != "" {
		err := buffer.Watch(watchCtx, a.filePath, func(op fsnotify.Op) {
			if watchCtx.Err() != nil || changed.Swap(true) {
				return
			}
			logger.Warnf("App: %s changed on disk (%s) during the session", a.filePath, op)
			notify(fmt.Sprintf("%s changed on disk; closing will overwrite it", a.filePath))
		})
		if err != nil {
			logger.Warnf("App: cannot watch %s: %v", a.filePath, err)
		}
	}

	onCommit := func(commit session.Commit) error {
		result.Commit = commit
		if !commit.Changed {
			return nil
		}
		if err := session.WriteTo(a.doc)(commit); err != nil {
			return err
		}
		// Our own save must not count as an external change.
		stopWatch()
		if a.filePath == "" {
			return nil
		}
		if err := a.doc.Save(""); err != nil {
			return err
		}
		result.Saved = true
		return nil
	}

	seed, reindent := session.Seed(block, a.cfg.Fence.Dedent)
	sess, err := session.Begin(m, c, block, seed, block.Lang(), a.cfg.EditorOptions(), onCommit,
		session.WithClipboard(a.clipboard),
		session.WithReindent(reindent),
	)
	if err != nil {
		return Result{}, err
	}

	a.events.Dispatch(event.TypeSessionBegan, event.SessionBeganData{
		SessionID: sess.ID(),
		FilePath:  a.filePath,
		StartLine: block.StartLine,
		EndLine:   block.EndLine,
	})

	var loopErr error
	if loop != nil {
		loopErr = loop(sess)
	}
	closeErr := sess.Close()
	result.ExternalChange = changed.Load()

	a.events.Dispatch(event.TypeSessionCommitted, event.SessionCommittedData{
		SessionID: sess.ID(),
		FilePath:  a.filePath,
		Changed:   result.Commit.Changed,
	})

	if err := errors.Join(loopErr, closeErr); err != nil {
		return result, err
	}
	return result, nil
}
