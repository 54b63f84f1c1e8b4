package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/fencedit/internal/launch"
)

// fakeRunner treats the expanded command as the temp file path.
type fakeRunner struct {
	write   string
	code    int
	err     error
	command string
	seed    string
}

func (f *fakeRunner) Run(_ context.Context, cmd launch.Command, _ string) (int, error) {
	command := cmd.String()
	f.command = command
	data, err := os.ReadFile(command)
	if err != nil {
		return -1, err
	}
	f.seed = string(data)
	if f.err != nil {
		return -1, f.err
	}
	if err := os.WriteFile(command, []byte(f.write), 0o600); err != nil {
		return -1, err
	}
	return f.code, nil
}

func TestProcessMounterRoundTrip(t *testing.T) {
	runner := &fakeRunner{write: "print(2)\n"}
	pm := &ProcessMounter{Command: "{{file}}", Runner: runner}

	ed, err := pm.Mount(Container{}, "print(1)", "Lua", Options{})
	require.NoError(t, err)

	assert.Equal(t, "print(1)", runner.seed)
	assert.Equal(t, ".lua", filepath.Ext(runner.command))
	assert.Equal(t, "print(2)", ed.GetValue())

	ed.Dispose()
	_, err = os.Stat(filepath.Dir(runner.command))
	assert.True(t, os.IsNotExist(err))
	ed.Dispose()
}

func TestProcessMounterKeepsTrailingNewlineOfSeed(t *testing.T) {
	runner := &fakeRunner{write: "a\n\n"}
	pm := &ProcessMounter{Command: "{{file}}", Runner: runner}

	ed, err := pm.Mount(Container{}, "a\n", "", Options{})
	require.NoError(t, err)
	defer ed.Dispose()
	assert.Equal(t, "a\n\n", ed.GetValue())
}

func TestProcessMounterNonZeroExitKeepsContents(t *testing.T) {
	runner := &fakeRunner{write: "changed", code: 1}
	pm := &ProcessMounter{Command: "{{file}}", Runner: runner}

	ed, err := pm.Mount(Container{}, "seed", "go", Options{})
	require.NoError(t, err)
	defer ed.Dispose()
	assert.Equal(t, "changed", ed.GetValue())
}

func TestProcessMounterRunError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("boom")}
	pm := &ProcessMounter{Command: "{{file}}", Runner: runner}

	_, err := pm.Mount(Container{}, "seed", "go", Options{})
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Dir(runner.command))
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessMounterReadOnlySkipsCommand(t *testing.T) {
	runner := &fakeRunner{}
	pm := &ProcessMounter{Command: "{{file}}", Runner: runner}

	ed, err := pm.Mount(Container{}, "seed", "go", Options{ReadOnly: true})
	require.NoError(t, err)
	defer ed.Dispose()
	assert.Empty(t, runner.command)
	assert.Equal(t, "seed", ed.GetValue())
}

func TestProcessMounterEmbeddedShell(t *testing.T) {
	var out strings.Builder
	runner := &launch.Runner{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &out}
	pm := &ProcessMounter{Command: `printf 'x = %s' "{{lang}}" > "{{file}}"`, Runner: runner}

	ed, err := pm.Mount(Container{}, "old", "py", Options{})
	require.NoError(t, err, out.String())
	defer ed.Dispose()
	assert.Equal(t, "x = py", ed.GetValue())
}

func TestLangExtension(t *testing.T) {
	assert.Equal(t, ".go", LangExtension("Go"))
	assert.Equal(t, ".c++", LangExtension("C++"))
	assert.Equal(t, ".txt", LangExtension(""))
	assert.Equal(t, ".txt", LangExtension("/../../x/target.txt"))
	assert.Equal(t, ".txt", LangExtension(`x"$(touch y)"`))
	assert.Equal(t, ".txt", LangExtension("a/b"))
}

func TestProcessMounterKeepsTempFileInItsDir(t *testing.T) {
	victim := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(victim, []byte("ORIGINAL"), 0o600))

	runner := &fakeRunner{write: "x"}
	pm := &ProcessMounter{Command: "{{file}}", Runner: runner}
	lang := "/../../../../../../../.." + victim

	ed, err := pm.Mount(Container{}, "CLOBBERED", lang, Options{})
	require.NoError(t, err)
	defer ed.Dispose()

	assert.Equal(t, "fence.txt", filepath.Base(runner.command))
	data, err := os.ReadFile(victim)
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL", string(data))
}

func TestProcessMounterDoesNotRunTheTag(t *testing.T) {
	work := t.TempDir()
	var out strings.Builder
	runner := &launch.Runner{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &out}
	pm := &ProcessMounter{Command: `printf '%s' "{{lang}}" > "{{file}}"`, Dir: work, Runner: runner}

	lang := `x"$(touch pwned)"`
	ed, err := pm.Mount(Container{}, "old", lang, Options{})
	require.NoError(t, err, out.String())
	defer ed.Dispose()

	assert.Equal(t, lang, ed.GetValue())
	assert.NoFileExists(t, filepath.Join(work, "pwned"))
}

func TestDefaultCommandQuotesTheFile(t *testing.T) {
	cmd := launch.Shell(DefaultCommand, map[string]string{launch.TokenFile: `/tmp/a"$(b)`})
	assert.Equal(t, `${EDITOR:-vi} "${FENCEDIT_FILE}"`, cmd.Line)
}
