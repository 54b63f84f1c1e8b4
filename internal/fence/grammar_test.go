package fence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDelimiter(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Delimiter
		ok   bool
	}{
		{"plain backticks", "```", Delimiter{Char: '`', Length: 3}, true},
		{"tagged", "```lua", Delimiter{Char: '`', Length: 3, Tag: "lua"}, true},
		{"tag with spaces", "````  go file=main.go  ", Delimiter{Char: '`', Length: 4, Tag: "go file=main.go"}, true},
		{"tilde", "~~~~~python", Delimiter{Char: '~', Length: 5, Tag: "python"}, true},
		{"indented", "  ```js", Delimiter{Char: '`', Length: 3, Tag: "js", Indent: "  "}, true},
		{"tab indented", "\t~~~", Delimiter{Char: '~', Length: 3, Indent: "\t"}, true},
		{"trailing whitespace", "```   \t", Delimiter{Char: '`', Length: 3}, true},
		{"tilde tag may hold backticks", "~~~a`b", Delimiter{Char: '~', Length: 3, Tag: "a`b"}, true},
		{"two backticks", "``", Delimiter{}, false},
		{"mixed run", "`~`", Delimiter{}, false},
		{"marker in tag", "```a`b", Delimiter{}, false},
		{"inline code", "text ```x```", Delimiter{}, false},
		{"empty", "", Delimiter{}, false},
		{"blank", "    ", Delimiter{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchDelimiter(tt.line)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsClosingFor(t *testing.T) {
	opening, ok := MatchDelimiter("```")
	require.True(t, ok)

	assert.True(t, IsClosingFor("```", opening, ClosePolicyLenient))
	assert.True(t, IsClosingFor("````", opening, ClosePolicyLenient), "longer run closes")
	assert.False(t, IsClosingFor("``", opening, ClosePolicyLenient), "shorter run never closes")
	assert.False(t, IsClosingFor("~~~", opening, ClosePolicyLenient), "different marker")
	assert.False(t, IsClosingFor("```go", opening, ClosePolicyLenient), "closing fences carry no tag")
	assert.True(t, IsClosingFor("```  ", opening, ClosePolicyLenient))

	long, _ := MatchDelimiter("`````")
	assert.False(t, IsClosingFor("````", long, ClosePolicyLenient))
}

func TestIsClosingForIndentPolicy(t *testing.T) {
	opening, _ := MatchDelimiter("  ```")

	assert.True(t, IsClosingFor("      ```", opening, ClosePolicyLenient))
	assert.False(t, IsClosingFor("      ```", opening, ClosePolicyStrict))
	assert.True(t, IsClosingFor("```", opening, ClosePolicyStrict))
	assert.True(t, IsClosingFor("  ```", opening, ClosePolicyStrict))
}

func TestStrictPolicyExpandsTabs(t *testing.T) {
	tabbed, _ := MatchDelimiter("\t```")
	assert.True(t, IsClosingFor("    ```", tabbed, ClosePolicyStrict))
	assert.False(t, IsClosingFor("     ```", tabbed, ClosePolicyStrict))

	spaced, _ := MatchDelimiter("  ```")
	assert.False(t, IsClosingFor("\t```", spaced, ClosePolicyStrict))
	assert.True(t, IsClosingFor("\t```", spaced, ClosePolicyLenient))
}

func TestIndentWidth(t *testing.T) {
	assert.Equal(t, 0, indentWidth(""))
	assert.Equal(t, 4, indentWidth("\t"))
	assert.Equal(t, 4, indentWidth("  \t"))
	assert.Equal(t, 6, indentWidth("\t  "))
}

func TestParseClosePolicy(t *testing.T) {
	p, ok := ParseClosePolicy("Strict")
	assert.True(t, ok)
	assert.Equal(t, ClosePolicyStrict, p)

	p, ok = ParseClosePolicy("")
	assert.True(t, ok)
	assert.Equal(t, ClosePolicyLenient, p)

	_, ok = ParseClosePolicy("loose")
	assert.False(t, ok)
}
