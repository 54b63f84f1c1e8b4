package editor

import (
	"slices"

	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/types"
)

// DefaultMaxHistory is the number of undoable changes a model keeps.
const DefaultMaxHistory = 100

// snapshot is the model state on one side of a change.
type snapshot struct {
	lines      []string
	selections []types.Range
}

// change is one undoable operation.
type change struct {
	source string
	before snapshot
	after  snapshot
}

// history is an undo/redo stack of whole-model snapshots.
type history struct {
	changes      []change
	currentIndex int // index of the next change to redo
	maxHistory   int
}

func newHistory(maxHistory int) *history {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &history{maxHistory: maxHistory}
}

// record adds c, dropping any redo tail and the oldest entries past the limit.
func (h *history) record(c change) {
	if h.currentIndex < len(h.changes) {
		h.changes = h.changes[:h.currentIndex]
	}
	h.changes = append(h.changes, c)
	if len(h.changes) > h.maxHistory {
		h.changes = h.changes[len(h.changes)-h.maxHistory:]
	}
	h.currentIndex = len(h.changes)
	logger.DebugTagf("history", "History: recorded change from %q. Index: %d, Count: %d", c.source, h.currentIndex, len(h.changes))
}

func (h *history) undo() (snapshot, bool) {
	if h.currentIndex <= 0 {
		return snapshot{}, false
	}
	h.currentIndex--
	return h.changes[h.currentIndex].before, true
}

func (h *history) redo() (snapshot, bool) {
	if h.currentIndex >= len(h.changes) {
		return snapshot{}, false
	}
	h.currentIndex++
	return h.changes[h.currentIndex-1].after, true
}

func (m *Model) snapshot() snapshot {
	return snapshot{lines: slices.Clone(m.lines), selections: slices.Clone(m.selections)}
}

func (m *Model) restore(s snapshot) {
	m.lines = slices.Clone(s.lines)
	m.selections = slices.Clone(s.selections)
}

// beginChange opens a change; nested calls fold into the outermost one.
func (m *Model) beginChange() snapshot {
	m.changeDepth++
	if m.changeDepth > 1 {
		return snapshot{}
	}
	return m.snapshot()
}

// endChange closes a change opened by beginChange and records it when the
// text differs from before.
func (m *Model) endChange(source string, before snapshot) {
	m.changeDepth--
	if m.changeDepth > 0 || slices.Equal(before.lines, m.lines) {
		return
	}
	m.history.record(change{source: source, before: before, after: m.snapshot()})
}

// Undo reverts the last change. It reports whether there was one.
func (m *Model) Undo() bool {
	if m.disposed || m.opts.ReadOnly {
		return false
	}
	s, ok := m.history.undo()
	if ok {
		m.restore(s)
	}
	return ok
}

// Redo reapplies the last undone change. It reports whether there was one.
func (m *Model) Redo() bool {
	if m.disposed || m.opts.ReadOnly {
		return false
	}
	s, ok := m.history.redo()
	if ok {
		m.restore(s)
	}
	return ok
}
