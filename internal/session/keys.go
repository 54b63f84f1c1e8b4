package session

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/input"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/types"
)

// PasteSource tags the edits the paste override applies.
const PasteSource = "fencedit"

// Paste inserts the clipboard text at every selection as a single edit
// operation, moving the cursors past it. When the clipboard cannot be read or
// is empty the editor's own paste action runs instead. Exactly one of the two
// happens per call.
func (s *Session) Paste(ctx context.Context) {
	if s.closed {
		return
	}
	text, err := s.clip.ReadText(ctx)
	if err != nil || text == "" {
		if err != nil {
			logger.DebugTagf("session", "Session %s: clipboard read failed, using editor paste: %v", s.id, err)
		}
		s.editor.Trigger("", editor.ActionPaste, nil)
		return
	}

	selections, ok := s.editor.GetSelections()
	if !ok {
		return
	}
	edits := make([]types.TextEdit, 0, len(selections))
	for _, sel := range selections {
		edits = append(edits, types.TextEdit{Range: sel, Text: text, ForceMoveMarkers: true})
	}
	s.editor.ExecuteEdits(PasteSource, edits)
}

// HandleKey dispatches ctrl shortcuts to the editor. It reports whether ev
// was consumed; other keys are left to the caller.
func (s *Session) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if s.closed {
		return false
	}
	name, action, ok := input.Shortcut(ev)
	if !ok {
		return false
	}
	if name == input.PasteKey {
		s.Paste(ctx)
		return true
	}
	s.editor.Trigger("", action, nil)
	return true
}
