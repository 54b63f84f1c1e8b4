// internal/buffer/document.go
package buffer

import (
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/fencedit/internal/fence"
	"github.com/bethropolis/fencedit/internal/logger"
)

// Document stores text as lines with their original terminators so that
// unchanged regions are written back byte for byte.
type Document struct {
	lines    []fence.Line
	filePath string
	perm     os.FileMode
	modified bool
}

// NewDocument creates a document holding text.
func NewDocument(text string) *Document {
	return &Document{lines: fence.SplitLines(text), perm: 0o644}
}

// Load reads a file into the document. Replaces existing content.
func (d *Document) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	if info, statErr := os.Stat(filePath); statErr == nil {
		d.perm = info.Mode().Perm()
	}
	d.lines = fence.SplitLines(string(data))
	d.filePath = filePath
	d.modified = false
	logger.Debugf("Document: loaded %d lines from %s", len(d.lines), filePath)
	return nil
}

// Save writes the document to filePath, or to the loaded path when empty.
func (d *Document) Save(filePath string) error {
	path := d.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}
	if err := os.WriteFile(path, []byte(d.Text()), d.perm); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	d.filePath = path
	d.modified = false
	return nil
}

// Text returns the full document text.
func (d *Document) Text() string {
	return fence.JoinLines(d.lines)
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the content of one line without its terminator.
func (d *Document) Line(index int) (string, error) {
	if index < 0 || index >= len(d.lines) {
		return "", fmt.Errorf("line %d (0-%d): %w", index, len(d.lines)-1, ErrLineRange)
	}
	return d.lines[index].Text, nil
}

// ReplaceLines implements Buffer. The caller supplies the range captured
// when the block was located; it is not re-validated against the content.
func (d *Document) ReplaceLines(startLine, endLine int, text string) error {
	if startLine < 0 || endLine < startLine || endLine >= len(d.lines) {
		return fmt.Errorf("replace lines %d-%d of %d: %w", startLine, endLine, len(d.lines), ErrLineRange)
	}

	tailEOL := d.lines[endLine].EOL
	replacement := fence.SplitLines(text + tailEOL)
	if len(replacement) == 0 {
		// Empty text still occupies one (empty) line.
		replacement = []fence.Line{{EOL: tailEOL}}
	}

	lines := make([]fence.Line, 0, len(d.lines)-(endLine-startLine+1)+len(replacement))
	lines = append(lines, d.lines[:startLine]...)
	lines = append(lines, replacement...)
	lines = append(lines, d.lines[endLine+1:]...)
	d.lines = lines
	d.modified = true

	logger.Debugf("Document: replaced lines %d-%d with %d line(s)", startLine, endLine, len(replacement))
	return nil
}

// FilePath returns the path the document was loaded from or saved to.
func (d *Document) FilePath() string {
	return d.filePath
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified
}

// Ensure Document satisfies the Buffer interface
var _ Buffer = (*Document)(nil)
