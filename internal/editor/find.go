package editor

import (
	"regexp"
	"unicode"

	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/types"
	"github.com/bethropolis/fencedit/internal/utils"
)

// Find returns the first match of re at or after from, wrapping around to
// the top of the text. Matches never span lines.
func (m *Model) Find(re *regexp.Regexp, from types.Position) (types.Range, bool) {
	from = m.clamp(from)
	for i := 0; i <= len(m.lines); i++ {
		lineIdx := (from.Line + i) % len(m.lines)
		line := m.lines[lineIdx]

		start := 0
		if i == 0 {
			start = utils.RuneIndexToByteOffset(line, from.Col)
		}
		if i == len(m.lines) {
			// Back on the starting line: only the part before from is left.
			line = line[:utils.RuneIndexToByteOffset(line, from.Col)]
		}

		loc := re.FindStringIndex(line[start:])
		if loc == nil || loc[0] == loc[1] {
			continue
		}
		return types.Range{
			Start: types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(line, start+loc[0])},
			End:   types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(line, start+loc[1])},
		}, true
	}
	return types.Range{}, false
}

// findNext selects the next occurrence of query, or of the selected text or
// the word at the cursor when query is empty.
func (m *Model) findNext(query string) {
	cur := m.selections[0].Normalized()
	from := cur.End
	if query == "" {
		if cur.IsEmpty() {
			query, from.Col = m.wordAt(cur.Start)
		} else {
			query = m.textIn(cur)
		}
	}
	if query == "" {
		return
	}

	match, ok := m.Find(regexp.MustCompile(regexp.QuoteMeta(query)), from)
	if !ok {
		logger.DebugTagf("editor", "Find: no match for %q", query)
		return
	}
	m.selections = []types.Range{match}
}

// wordAt returns the identifier-like word touching p and the column after it.
func (m *Model) wordAt(p types.Position) (string, int) {
	runes := []rune(m.lines[p.Line])
	isWord := func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

	start, end := p.Col, p.Col
	for start > 0 && isWord(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWord(runes[end]) {
		end++
	}
	return string(runes[start:end]), end
}
