// Package editor defines the contract of the code editor component that
// sessions and previews mount, and ships implementations of it.
package editor

import "github.com/bethropolis/fencedit/internal/types"

// Action identifiers accepted by Editor.Trigger.
const (
	ActionFind            = "actions.find"
	ActionFindReplace     = "editor.action.startFindReplaceAction"
	ActionCommentLine     = "editor.action.commentLine"
	ActionInsertLineAfter = "editor.action.insertLineAfter"
	ActionOutdentLines    = "editor.action.outdentLines"
	ActionIndentLines     = "editor.action.indentLines"
	ActionCopyLinesDown   = "editor.action.copyLinesDownAction"
	ActionCopy            = "editor.action.clipboardCopyAction"
	ActionPaste           = "editor.action.clipboardPasteAction"
	ActionCut             = "editor.action.clipboardCutAction"
	ActionUndo            = "undo"
	ActionRedo            = "redo"
)

// Options configures a mounted editor.
type Options struct {
	ReadOnly    bool
	LineNumbers bool
	WordWrap    bool
	Minimap     bool
	Folding     bool
	FontSize    int
	TabWidth    int
	Theme       string
}

// Container is the screen region an editor is mounted into.
type Container struct {
	X, Y          int
	Width, Height int
}

// Editor is a live editor instance.
type Editor interface {
	// GetValue returns the current text verbatim.
	GetValue() string
	// GetSelections returns the current selections; ok is false when the
	// editor has none (e.g. after Dispose).
	GetSelections() (selections []types.Range, ok bool)
	// ExecuteEdits applies edits as one operation tagged with source.
	// It reports whether the edits were applied.
	ExecuteEdits(source string, edits []types.TextEdit) bool
	// Trigger runs the named editor action.
	Trigger(source, actionID string, payload any)
	// Dispose releases the instance. Further calls are no-ops.
	Dispose()
}

// Mounter creates editor instances seeded with text.
type Mounter interface {
	Mount(c Container, text, lang string, opts Options) (Editor, error)
}
