// Package session binds a located fence block to a mounted editor and writes
// the edited body back into the host document when the session closes.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bethropolis/fencedit/internal/clipboard"
	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/fence"
	"github.com/bethropolis/fencedit/internal/logger"
)

// ErrCommitted is returned by Commit once the session has been committed.
var ErrCommitted = errors.New("session already committed")

// Commit is handed to the commit callback when a session closes.
type Commit struct {
	SessionID string
	Block     fence.Block
	// FinalText is the editor content at close, verbatim.
	FinalText string
	// Replacement is the text that replaces Block.StartLine..Block.EndLine.
	Replacement string
	// Changed is false when FinalText equals the seed; Replacement is then
	// the block's original span.
	Changed bool
}

// CommitFunc receives the single commit of a session.
type CommitFunc func(Commit) error

// ContentWriter replaces an inclusive range of document lines.
type ContentWriter interface {
	ReplaceLines(startLine, endLine int, text string) error
}

// WriteTo returns a CommitFunc that splices the replacement into w over the
// block's original line range.
func WriteTo(w ContentWriter) CommitFunc {
	return func(c Commit) error {
		if err := w.ReplaceLines(c.Block.StartLine, c.Block.EndLine, c.Replacement); err != nil {
			return fmt.Errorf("write block at lines %d-%d: %w", c.Block.StartLine, c.Block.EndLine, err)
		}
		return nil
	}
}

// Seed returns the initial editor content for block. With dedent the opening
// indent is stripped from the body; reindent reports whether it was, and is
// passed to Begin through WithReindent.
func Seed(block fence.Block, dedent bool) (text string, reindent bool) {
	if !dedent {
		return block.Body, false
	}
	return block.Dedented()
}

// Option configures a Session.
type Option func(*Session)

// WithClipboard sets the clipboard the paste override reads from.
func WithClipboard(r clipboard.Reader) Option {
	return func(s *Session) { s.clip = r }
}

// WithReindent makes Replacement re-apply the block indent to edited text.
func WithReindent(reindent bool) Option {
	return func(s *Session) { s.reindent = reindent }
}

// Session is one editing session over one fence block.
type Session struct {
	id       string
	block    fence.Block
	seed     string
	editor   editor.Editor
	onCommit CommitFunc
	clip     clipboard.Reader
	reindent bool

	committed bool
	final     string
	closed    bool
}

// Begin mounts an editor seeded with initialContent and returns the session
// owning it. onCommit is invoked exactly once, from Close.
func Begin(m editor.Mounter, c editor.Container, block fence.Block, initialContent, lang string, opts editor.Options, onCommit CommitFunc, options ...Option) (*Session, error) {
	s := &Session{
		id:       uuid.NewString(),
		block:    block,
		seed:     initialContent,
		onCommit: onCommit,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.clip == nil {
		s.clip = clipboard.NewMemory("")
	}

	ed, err := m.Mount(c, initialContent, lang, opts)
	if err != nil {
		return nil, fmt.Errorf("mount editor for block at line %d: %w", block.StartLine, err)
	}
	s.editor = ed

	logger.DebugTagf("session", "Session %s: began on lines %d-%d (lang %q)", s.id, block.StartLine, block.EndLine, lang)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Block returns the block being edited.
func (s *Session) Block() fence.Block { return s.block }

// Editor returns the mounted editor.
func (s *Session) Editor() editor.Editor { return s.editor }

// Seed returns the text the editor was seeded with.
func (s *Session) Seed() string { return s.seed }

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s.closed }

// Commit reads the editor content verbatim. It succeeds once; later calls
// return ErrCommitted.
func (s *Session) Commit() (string, error) {
	if s.committed {
		return "", ErrCommitted
	}
	s.final = s.editor.GetValue()
	s.committed = true
	return s.final, nil
}

// Replacement returns the text that replaces the block's delimiter-to-delimiter
// span for finalText. Unchanged text yields the original span byte for byte.
func (s *Session) Replacement(finalText string) string {
	if finalText == s.seed {
		return s.block.Span
	}
	if s.reindent {
		finalText = s.block.Reindent(finalText)
	}
	return s.block.Replacement(finalText)
}

// Close commits whatever the editor holds, hands the result to the commit
// callback and disposes the editor. There is no discard path. Repeated calls
// are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer s.editor.Dispose()

	if !s.committed {
		if _, err := s.Commit(); err != nil {
			return err
		}
	}

	c := Commit{
		SessionID:   s.id,
		Block:       s.block,
		FinalText:   s.final,
		Replacement: s.Replacement(s.final),
		Changed:     s.final != s.seed,
	}
	logger.DebugTagf("session", "Session %s: closing (changed=%t)", s.id, c.Changed)

	if s.onCommit == nil {
		return nil
	}
	if err := s.onCommit(c); err != nil {
		logger.Errorf("Session %s: commit failed: %v", s.id, err)
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}
