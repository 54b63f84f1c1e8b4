package app

import "strings"

// linkSpan is a [[wiki link]] in one line. Start and End are rune indices
// covering the brackets; End is exclusive.
type linkSpan struct {
	Text  string
	Start int
	End   int
}

// findLinks returns the wiki links of line in order. Unclosed or empty
// brackets are not links.
func findLinks(line string) []linkSpan {
	var links []linkSpan
	runes := []rune(line)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] != '[' || runes[i+1] != '[' {
			continue
		}
		start := i
		closing := -1
		for j := i + 2; j+1 < len(runes); j++ {
			if runes[j] == ']' && runes[j+1] == ']' {
				closing = j
				break
			}
		}
		if closing < 0 {
			break
		}
		text := strings.TrimSpace(string(runes[start+2 : closing]))
		if text != "" && !strings.Contains(text, "[[") {
			links = append(links, linkSpan{Text: text, Start: start, End: closing + 2})
			i = closing + 1
		}
	}
	return links
}

// linkAt returns the link covering rune index col of line.
func linkAt(line string, col int) (linkSpan, bool) {
	for _, l := range findLinks(line) {
		if col >= l.Start && col < l.End {
			return l, true
		}
	}
	return linkSpan{}, false
}
