// internal/buffer/buffer.go
package buffer

import "errors"

// Buffer is the host document model seen by the editing core.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Text() string
	LineCount() int
	Line(index int) (string, error)
	// ReplaceLines substitutes lines startLine..endLine (inclusive) with text.
	// The terminator of endLine is kept.
	ReplaceLines(startLine, endLine int, text string) error
	FilePath() string
	IsModified() bool
}

// ErrLineRange is returned for line indices outside the document.
var ErrLineRange = errors.New("line range out of bounds")
