package preview

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/bethropolis/fencedit/internal/logger"
)

// Resolver maps the text of a link found in sourcePath to a file.
type Resolver interface {
	Resolve(linkText, sourcePath string) (string, bool)
}

// FSResolver resolves wiki links against a vault directory tree.
type FSResolver struct {
	Vault fs.FS
}

var errFound = errors.New("found")

// CleanLinkText strips an alias ("|text") and a heading or block reference
// ("#section") from a wiki link.
func CleanLinkText(linkText string) string {
	if i := strings.IndexByte(linkText, '|'); i >= 0 {
		linkText = linkText[:i]
	}
	if i := strings.IndexByte(linkText, '#'); i >= 0 {
		linkText = linkText[:i]
	}
	return strings.TrimSpace(linkText)
}

// Resolve tries the link relative to the source note, then relative to the
// vault root, then the first file in walk order with the same base name.
// Links without an extension also match a ".md" file.
func (r FSResolver) Resolve(linkText, sourcePath string) (string, bool) {
	link := strings.TrimPrefix(path.Clean("/"+CleanLinkText(linkText)), "/")
	if link == "" || link == "." {
		return "", false
	}

	names := []string{link}
	if path.Ext(link) == "" {
		names = append(names, link+".md")
	}

	for _, name := range names {
		for _, candidate := range []string{path.Join(path.Dir(sourcePath), name), name} {
			if r.isFile(candidate) {
				return candidate, true
			}
		}
	}

	var found string
	err := fs.WalkDir(r.Vault, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		for _, name := range names {
			if d.Name() == path.Base(name) {
				found = p
				return errFound
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		logger.Debugf("Preview: walking vault for %q: %v", linkText, err)
	}
	return found, found != ""
}

func (r FSResolver) isFile(name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(r.Vault, name)
	return err == nil && !info.IsDir()
}
