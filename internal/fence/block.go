package fence

import "strings"

// Block is an immutable snapshot of one located fence.
type Block struct {
	StartLine int // opening delimiter line, 0-based
	EndLine   int // closing delimiter line, 0-based
	Indent    string
	Delimiter Delimiter

	// Body is the text strictly between the delimiters, lines joined with "\n".
	Body string

	Opening string // opening delimiter line as written
	Closing string // closing delimiter line as written
	EOL     string // terminator of the opening line

	// Span is the original text of lines StartLine..EndLine, without the
	// terminator of EndLine.
	Span string
}

// Tag returns the trimmed info string of the opening delimiter.
func (b Block) Tag() string {
	return b.Delimiter.Tag
}

// Lang returns the first word of the info string.
func (b Block) Lang() string {
	lang, _ := splitInfo(b.Delimiter.Tag)
	return lang
}

// Empty reports whether the block has no body lines.
func (b Block) Empty() bool {
	return b.StartLine+1 == b.EndLine
}

// Contains reports whether line lies strictly between the delimiters.
func (b Block) Contains(line int) bool {
	return line > b.StartLine && line < b.EndLine
}

// Replacement rebuilds the block's span with body in place of the original
// body. Delimiter lines are kept verbatim. When body equals the captured Body
// the original Span is returned unchanged.
func (b Block) Replacement(body string) string {
	if body == b.Body {
		return b.Span
	}

	eol := b.EOL
	if eol == "" {
		eol = "\n"
	}

	var sb strings.Builder
	sb.WriteString(b.Opening)
	sb.WriteString(eol)
	if body != "" {
		for _, line := range splitBody(body) {
			sb.WriteString(line)
			sb.WriteString(eol)
		}
	}
	sb.WriteString(b.Closing)
	return sb.String()
}

// Dedented returns the body with the opening indent stripped from every
// non-blank line. Whitespace-only lines are kept as they are, since Reindent
// leaves them alone. ok is false when the block is not indented or some
// non-blank line does not carry the indent, in which case the body is returned
// as is.
func (b Block) Dedented() (string, bool) {
	if b.Indent == "" {
		return b.Body, false
	}
	lines := splitBody(b.Body)
	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
		case strings.HasPrefix(line, b.Indent):
			lines[i] = line[len(b.Indent):]
		default:
			return b.Body, false
		}
	}
	return strings.Join(lines, "\n"), true
}

// Reindent prefixes every non-blank line of text with the block's indent.
func (b Block) Reindent(text string) string {
	if b.Indent == "" || text == "" {
		return text
	}
	lines := splitBody(text)
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = b.Indent + line
		}
	}
	return strings.Join(lines, "\n")
}
