// Package launch expands command templates and runs them through an
// embedded POSIX shell, for opening documents in external applications.
package launch

import (
	"sort"
	"strconv"
	"strings"
)

// Template tokens understood by the launch and editor command templates.
const (
	TokenVaultPath  = "{{vaultpath}}"
	TokenFilePath   = "{{filepath}}"
	TokenFolderPath = "{{folderpath}}"
	TokenLine       = "{{line}}"
	TokenCh         = "{{ch}}"
	TokenURL        = "{{url}}"
	TokenFile       = "{{file}}"
	TokenDir        = "{{dir}}"
	TokenLang       = "{{lang}}"
)

// VarPrefix starts the name of the shell variable carrying a token's value.
const VarPrefix = "FENCEDIT_"

// TokenVar returns the shell variable name for token, e.g. FENCEDIT_FILE for
// {{file}}.
func TokenVar(token string) string {
	return VarPrefix + strings.ToUpper(strings.TrimSuffix(strings.TrimPrefix(token, "{{"), "}}"))
}

// Command is a shell command line whose template tokens were replaced by
// references to shell variables. Values never become shell source, so quotes
// or substitutions inside them are not interpreted.
type Command struct {
	Line string
	// Vars maps variable names to their values.
	Vars map[string]string
}

// Shell turns template into a Command. Each token becomes ${NAME} with NAME
// from TokenVar, and its value is carried in Vars.
func Shell(template string, replacements map[string]string) Command {
	refs := make(map[string]string, len(replacements))
	vars := make(map[string]string, len(replacements))
	for token, value := range replacements {
		name := TokenVar(token)
		refs[token] = "${" + name + "}"
		vars[name] = value
	}
	return Command{Line: Expand(template, refs), Vars: vars}
}

// Env returns Vars as sorted NAME=value pairs.
func (c Command) Env() []string {
	env := make([]string, 0, len(c.Vars))
	for name, value := range c.Vars {
		env = append(env, name+"="+value)
	}
	sort.Strings(env)
	return env
}

// String returns the line with variable references replaced by their values,
// for logs and messages. It is not safe to run.
func (c Command) String() string {
	refs := make(map[string]string, len(c.Vars))
	for name, value := range c.Vars {
		refs["${"+name+"}"] = value
	}
	return Expand(c.Line, refs)
}

// Expand replaces every token of replacements found in template.
// Tokens are applied longest first so no token can clobber part of another.
// The result is plain text; use Shell for anything handed to a shell.
func Expand(template string, replacements map[string]string) string {
	tokens := make([]string, 0, len(replacements))
	for token := range replacements {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, token, replacements[token])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Target identifies what to open. Line and Ch are 0-based; templates receive
// them 1-based.
type Target struct {
	VaultPath string
	FilePath  string // relative to VaultPath
	Line      int
	Ch        int
}

// FolderPath returns the vault-relative folder of FilePath.
func (t Target) FolderPath() string {
	idx := strings.LastIndex(t.FilePath, "/")
	if idx < 0 {
		return ""
	}
	return t.FilePath[:idx]
}

// Tokens returns the replacements for the execute template.
func (t Target) Tokens() map[string]string {
	return map[string]string{
		TokenVaultPath:  t.VaultPath,
		TokenFilePath:   t.FilePath,
		TokenFolderPath: t.FolderPath(),
		TokenLine:       strconv.Itoa(t.Line + 1),
		TokenCh:         strconv.Itoa(t.Ch + 1),
	}
}
