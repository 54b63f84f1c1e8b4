package fence

import (
	"strings"

	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/types"
)

const logTag = "fence"

// Scan is the result of one pass over a document.
type Scan struct {
	Blocks []Block
	// Unterminated is the opening line of a fence left open at end of
	// document, or -1.
	Unterminated int
	LineCount    int
}

// ScanText finds every well-formed fence in text in a single pass.
// Fences do not nest: while a fence is open every line that fails
// IsClosingFor is body text.
func ScanText(text string, policy ClosePolicy) Scan {
	lines := SplitLines(text)
	res := Scan{Unterminated: -1, LineCount: len(lines)}

	open := -1
	var opening Delimiter
	for i, line := range lines {
		if open < 0 {
			if d, ok := MatchDelimiter(line.Text); ok {
				open, opening = i, d
			}
			continue
		}
		if IsClosingFor(line.Text, opening, policy) {
			res.Blocks = append(res.Blocks, newBlock(lines, open, i, opening))
			open = -1
		}
	}
	if open >= 0 {
		res.Unterminated = open
	}
	return res
}

func newBlock(lines []Line, start, end int, opening Delimiter) Block {
	body := make([]string, 0, end-start-1)
	for _, l := range lines[start+1 : end] {
		body = append(body, l.Text)
	}

	span := JoinLines(lines[start:end]) + lines[end].Text

	return Block{
		StartLine: start,
		EndLine:   end,
		Indent:    opening.Indent,
		Delimiter: opening,
		Body:      strings.Join(body, "\n"),
		Opening:   lines[start].Text,
		Closing:   lines[end].Text,
		EOL:       lines[start].EOL,
		Span:      span,
	}
}

// At returns the block containing line strictly between its delimiters.
func (s Scan) At(line int) (Block, bool) {
	for _, b := range s.Blocks {
		if b.Contains(line) {
			return b, true
		}
		if b.StartLine > line {
			break
		}
	}
	return Block{}, false
}

// Locate returns the fence enclosing cursor. The bool is false when the
// cursor is not inside a well-formed fence (NotInFence), including when it
// sits on a delimiter line or inside an unterminated fence.
func Locate(text string, cursor types.Position, policy ClosePolicy) (Block, bool) {
	return ScanText(text, policy).At(cursor.Line)
}

// Locator binds a close policy for repeated lookups.
type Locator struct {
	Policy ClosePolicy
}

// NewLocator creates a Locator with the given policy.
func NewLocator(policy ClosePolicy) *Locator {
	return &Locator{Policy: policy}
}

// Locate is Locate with the locator's policy, with diagnostics logged.
func (l *Locator) Locate(text string, cursor types.Position) (Block, bool) {
	scan := ScanText(text, l.Policy)
	block, ok := scan.At(cursor.Line)
	switch {
	case ok:
		logger.DebugTagf(logTag, "cursor line %d inside fence %d-%d (tag %q)", cursor.Line, block.StartLine, block.EndLine, block.Tag())
	case scan.Unterminated >= 0 && cursor.Line > scan.Unterminated:
		logger.DebugTagf(logTag, "cursor line %d follows unterminated fence at line %d", cursor.Line, scan.Unterminated)
	default:
		logger.DebugTagf(logTag, "cursor line %d not in a fence (%d fences scanned)", cursor.Line, len(scan.Blocks))
	}
	return block, ok
}

// Scan is ScanText with the locator's policy.
func (l *Locator) Scan(text string) Scan {
	return ScanText(text, l.Policy)
}
