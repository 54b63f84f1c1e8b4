package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bethropolis/fencedit/internal/clipboard"
	"github.com/bethropolis/fencedit/internal/launch"
	"github.com/bethropolis/fencedit/internal/logger"
)

// DefaultCommand opens the temp file in $EDITOR, falling back to vi.
const DefaultCommand = `${EDITOR:-vi} "{{file}}"`

const (
	tempDirPattern = "fencedit-*"
	tempFileMode   = 0o600
)

// ProcessMounter edits the seed text in an external program. Mount writes the
// text to a temp file, runs Command on it and blocks until the program exits;
// the returned editor then holds the file's contents.
type ProcessMounter struct {
	// Command is a template; {{file}}, {{dir}} and {{lang}} are passed as the
	// shell variables FENCEDIT_FILE, FENCEDIT_DIR and FENCEDIT_LANG.
	Command string
	// Dir is the working directory for the command.
	Dir       string
	Runner    launch.CommandRunner
	Clipboard clipboard.Clipboard
}

// NewProcessMounter returns a ProcessMounter running command through the
// embedded shell on the process's standard streams.
func NewProcessMounter(command, dir string, clip clipboard.Clipboard) *ProcessMounter {
	return &ProcessMounter{Command: command, Dir: dir, Runner: launch.NewRunner(), Clipboard: clip}
}

// langPattern is what a language word must look like to name a temp file.
var langPattern = regexp.MustCompile(`^[a-z0-9+#_-]+$`)

// LangExtension returns the temp file extension used for lang. Anything that
// is not a plain language word gets .txt.
func LangExtension(lang string) string {
	lang = strings.ToLower(lang)
	if langPattern.MatchString(lang) {
		return "." + lang
	}

	return ".txt"
}

// Mount implements Mounter.
func (p *ProcessMounter) Mount(_ Container, text, lang string, opts Options) (Editor, error) {
	dir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	path := filepath.Join(dir, "fence"+LangExtension(lang))
	if err := os.WriteFile(path, []byte(text), tempFileMode); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	ed := &processEditor{Model: NewModel(text, lang, opts, p.Clipboard), dir: dir}
	if opts.ReadOnly {
		return ed, nil
	}

	command := p.Command
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	cmd := launch.Shell(command, map[string]string{
		launch.TokenFile: path,
		launch.TokenDir:  dir,
		launch.TokenLang: lang,
	})

	runner := p.Runner
	if runner == nil {
		runner = launch.NewRunner()
	}
	workDir := p.Dir
	if workDir == "" {
		workDir = dir
	}

	logger.Debugf("ProcessMounter: running %q", cmd.String())
	code, err := runner.Run(context.Background(), cmd, workDir)
	if err != nil {
		ed.Dispose()
		return nil, fmt.Errorf("run editor command: %w", err)
	}
	if code != 0 {
		logger.Warnf("ProcessMounter: %q exited with %d; keeping the file contents", cmd.String(), code)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		ed.Dispose()
		return nil, fmt.Errorf("read temp file: %w", err)
	}
	ed.SetValue(trimAddedNewline(text, string(edited)))
	return ed, nil
}

// trimAddedNewline drops the final line break most editors append on save
// when the seed text did not end with one.
func trimAddedNewline(seed, edited string) string {
	if strings.HasSuffix(seed, "\n") {
		return edited
	}
	if trimmed, ok := strings.CutSuffix(edited, "\r\n"); ok {
		return trimmed
	}
	return strings.TrimSuffix(edited, "\n")
}

// processEditor is a Model whose Dispose also removes the temp files.
type processEditor struct {
	*Model
	dir string
}

func (e *processEditor) Dispose() {
	if e.Disposed() {
		return
	}
	e.Model.Dispose()
	if err := os.RemoveAll(e.dir); err != nil {
		logger.Warnf("ProcessMounter: remove %s: %v", e.dir, err)
	}
}
