// Package utils holds small text helpers shared by the editor model and the TUI.
package utils

import (
	"unicode/utf8"
)

// RuneIndexToByteOffset converts a rune index to a byte offset in line.
// Indices past the end clamp to len(line).
func RuneIndexToByteOffset(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRuneInString(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	return len(line)
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in line.
func ByteOffsetToRuneIndex(line string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCountInString(line[:byteOffset])
}

// LeadingWhitespace returns the run of spaces and tabs that starts line.
func LeadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}
