package preview

import "strings"

// Allowlist is the set of file extensions that get a preview.
type Allowlist map[string]struct{}

// NewAllowlist builds an allow-list. Extensions are matched case-insensitively
// with or without a leading dot.
func NewAllowlist(extensions ...string) Allowlist {
	a := make(Allowlist, len(extensions))
	for _, ext := range extensions {
		if ext = normalizeExt(ext); ext != "" {
			a[ext] = struct{}{}
		}
	}
	return a
}

// Allows reports whether ext is on the list.
func (a Allowlist) Allows(ext string) bool {
	_, ok := a[normalizeExt(ext)]
	return ok
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
