package launch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/fencedit/internal/logger"
)

// DefaultExecuteTemplate opens the vault as a VS Code workspace with the file focused.
const DefaultExecuteTemplate = `code "{{vaultpath}}" "{{vaultpath}}/{{filepath}}"`

// URLDelay separates the workspace URL from the file URL so the right
// window is in front before the file is opened.
const URLDelay = 200 * time.Millisecond

// Settings configures the external launch collaborator.
type Settings struct {
	ExecuteTemplate string `toml:"execute_template"`
	URLProtocol     string `toml:"url_protocol"`
	OpenFile        bool   `toml:"open_file"`
	WorkspacePath   string `toml:"workspace_path"`
	// URLOpener is the command used to hand a URL to the desktop.
	URLOpener string `toml:"url_opener"`
}

// DefaultSettings returns the stock launch settings.
func DefaultSettings() Settings {
	return Settings{
		ExecuteTemplate: DefaultExecuteTemplate,
		URLProtocol:     "vscode",
		OpenFile:        true,
		WorkspacePath:   TokenVaultPath,
		URLOpener:       `xdg-open "{{url}}"`,
	}
}

// CommandRunner runs one shell command.
type CommandRunner interface {
	Run(ctx context.Context, command Command, dir string) (int, error)
}

// Launcher opens targets in an external application.
type Launcher struct {
	settings Settings
	runner   CommandRunner
	sleep    func(time.Duration)
}

// NewLauncher creates a Launcher. A nil runner uses NewRunner().
func NewLauncher(settings Settings, runner CommandRunner) *Launcher {
	if runner == nil {
		runner = NewRunner()
	}
	return &Launcher{settings: settings, runner: runner, sleep: time.Sleep}
}

// Command returns the execute template for t as a shell command.
func (l *Launcher) Command(t Target) Command {
	template := l.settings.ExecuteTemplate
	if strings.TrimSpace(template) == "" {
		template = DefaultExecuteTemplate
	}
	return Shell(template, t.Tokens())
}

// Open runs the execute template for t. Failures are logged; the error is
// returned for callers that report it but must not be treated as fatal.
func (l *Launcher) Open(ctx context.Context, t Target) error {
	command := l.Command(t)
	logger.Debugf("Launcher: running %q", command.String())
	return l.run(ctx, command, t.VaultPath)
}

// URLs returns the URLs to open for t, in order.
func (l *Launcher) URLs(t Target) []string {
	base := fmt.Sprintf("%s://file/%s", l.settings.URLProtocol, t.VaultPath)
	if !l.settings.OpenFile {
		return []string{base}
	}
	workspace := Expand(l.settings.WorkspacePath, map[string]string{TokenVaultPath: t.VaultPath})
	return []string{
		fmt.Sprintf("%s://file/%s", l.settings.URLProtocol, workspace),
		base + "/" + t.FilePath,
	}
}

// OpenURL hands the URLs for t to the configured opener, pausing URLDelay
// between them.
func (l *Launcher) OpenURL(ctx context.Context, t Target) error {
	for i, url := range l.URLs(t) {
		if i > 0 {
			l.sleep(URLDelay)
		}
		command := Shell(l.settings.URLOpener, map[string]string{TokenURL: url})
		if err := l.run(ctx, command, t.VaultPath); err != nil {
			return err
		}
	}
	return nil
}

func (l *Launcher) run(ctx context.Context, command Command, dir string) error {
	code, err := l.runner.Run(ctx, command, dir)
	if err != nil {
		logger.Errorf("Launcher: exec error: %v", err)
		return fmt.Errorf("run %q: %w", command.String(), err)
	}
	if code != 0 {
		logger.Errorf("Launcher: %q exited with %d", command.String(), code)
		return fmt.Errorf("%q exited with %d", command.String(), code)
	}
	return nil
}
