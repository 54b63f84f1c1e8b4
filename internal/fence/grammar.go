// Package fence locates, extracts and rewrites fenced code blocks in
// line-oriented text documents.
package fence

import (
	"strings"
)

// MinMarkerLength is the shortest run of marker characters that forms a fence.
const MinMarkerLength = 3

// Marker characters recognised as fence delimiters.
const (
	Backtick byte = '`'
	Tilde    byte = '~'
)

// ClosePolicy controls how closing-delimiter indentation is judged.
type ClosePolicy int

const (
	// ClosePolicyLenient accepts a closing delimiter at any indentation.
	ClosePolicyLenient ClosePolicy = iota
	// ClosePolicyStrict rejects a closing delimiter indented deeper than its opening.
	ClosePolicyStrict
)

// ParseClosePolicy maps a config value to a ClosePolicy.
func ParseClosePolicy(name string) (ClosePolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lenient":
		return ClosePolicyLenient, true
	case "strict":
		return ClosePolicyStrict, true
	}
	return ClosePolicyLenient, false
}

func (p ClosePolicy) String() string {
	if p == ClosePolicyStrict {
		return "strict"
	}
	return "lenient"
}

// Delimiter describes one fence delimiter line.
type Delimiter struct {
	Char   byte   // Backtick or Tilde
	Length int    // run length, >= MinMarkerLength
	Tag    string // trimmed info string; empty on closing lines
	Indent string // leading whitespace of the line
}

func isMarker(c byte) bool {
	return c == Backtick || c == Tilde
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// MatchDelimiter reports whether line is a fence delimiter line.
// line must not contain its terminator.
func MatchDelimiter(line string) (Delimiter, bool) {
	i := 0
	for i < len(line) && isBlank(line[i]) {
		i++
	}
	if i == len(line) || !isMarker(line[i]) {
		return Delimiter{}, false
	}

	marker := line[i]
	start := i
	for i < len(line) && line[i] == marker {
		i++
	}
	run := i - start
	if run < MinMarkerLength {
		return Delimiter{}, false
	}

	tag := strings.TrimSpace(line[i:])
	if strings.IndexByte(tag, marker) >= 0 || strings.ContainsAny(tag, "\r\n") {
		return Delimiter{}, false
	}

	return Delimiter{
		Char:   marker,
		Length: run,
		Tag:    tag,
		Indent: line[:start],
	}, true
}

// IsClosingFor reports whether line closes a fence opened by opening.
func IsClosingFor(line string, opening Delimiter, policy ClosePolicy) bool {
	d, ok := MatchDelimiter(line)
	if !ok {
		return false
	}
	if d.Char != opening.Char || d.Length < opening.Length || d.Tag != "" {
		return false
	}
	if policy == ClosePolicyStrict && indentWidth(d.Indent) > indentWidth(opening.Indent) {
		return false
	}
	return true
}

// tabStop is the column multiple a tab advances to in indentWidth.
const tabStop = 4

// indentWidth returns the column width of indent with tabs expanded.
func indentWidth(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += tabStop - width%tabStop
			continue
		}
		width++
	}
	return width
}
