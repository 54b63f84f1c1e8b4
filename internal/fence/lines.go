package fence

import "strings"

// Line is one document line with its terminator kept apart from the content.
type Line struct {
	Text string
	EOL  string // "\n", "\r\n" or "" for an unterminated last line
}

// SplitLines splits text into lines. Joining every Text+EOL reproduces text
// byte for byte. A trailing terminator does not start an extra line, so
// "a\n" has one line; the empty document has none.
func SplitLines(text string) []Line {
	lines := make([]Line, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, Line{Text: text})
			break
		}
		content, eol := text[:idx], "\n"
		if strings.HasSuffix(content, "\r") {
			content, eol = content[:len(content)-1], "\r\n"
		}
		lines = append(lines, Line{Text: content, EOL: eol})
		text = text[idx+1:]
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Text)
		sb.WriteString(l.EOL)
	}
	return sb.String()
}

// splitBody splits editor text on any line break style.
func splitBody(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
