package fence

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Meta holds key-value metadata parsed from a fence's info string,
// e.g. ```go file=main.go or ```js {"title": "x"}.
type Meta map[string]interface{}

// Get returns the metadata value for the given key as a string.
// It returns an empty string if the key is missing or the Meta is nil.
func (m Meta) Get(name string) string {
	if m == nil {
		return ""
	}

	value, has := m[name]
	if !has {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

var (
	reJSON     = regexp.MustCompile(`^\s*{\s*["}]`)
	reBrackets = regexp.MustCompile(`^\s*{(.*)}$`)
)

// splitInfo separates the language word from the rest of an info string.
func splitInfo(info string) (string, string) {
	info = strings.TrimSpace(info)
	if strings.HasPrefix(info, "{") {
		return "", info
	}
	idx := strings.IndexAny(info, " \t{")
	if idx < 0 {
		return info, ""
	}
	return info[:idx], strings.TrimSpace(info[idx:])
}

// Meta parses the attributes following the language word of the info string.
func (b Block) Meta() (Meta, error) {
	_, rest := splitInfo(b.Delimiter.Tag)
	return parseMeta(rest)
}

func parseMeta(input string) (Meta, error) {
	if len(input) == 0 {
		return Meta{}, nil
	}

	if reJSON.MatchString(input) {
		var meta Meta
		if err := json.Unmarshal([]byte(input), &meta); err != nil {
			return nil, fmt.Errorf("invalid JSON metadata: %w", err)
		}
		return meta, nil
	}

	if subs := reBrackets.FindStringSubmatch(input); subs != nil {
		input = subs[1]
	}

	words, err := shlex.Split(input)
	if err != nil {
		return nil, fmt.Errorf("invalid metadata %q: %w", input, err)
	}

	dict := make(Meta)
	for _, word := range words {
		if idx := strings.IndexRune(word, '='); idx > 0 {
			dict[word[:idx]] = word[idx+1:]
		}
	}

	return dict, nil
}
