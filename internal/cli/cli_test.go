package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = "# notes\n\n```go file=main.go\npackage main\n```\n\ntext\n\n~~~py\nx = 1\ny = 2\n~~~\n"

type env struct {
	dir    string
	config string
	log    string
}

func newEnv(t *testing.T, config string) env {
	t.Helper()
	dir := t.TempDir()
	e := env{dir: dir, config: filepath.Join(dir, "config.toml"), log: filepath.Join(dir, "fencedit.log")}
	require.NoError(t, os.WriteFile(e.config, []byte(config), 0o600))
	return e
}

func (e env) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e env) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	args = append(args, "--config", e.config, "--logfile", e.log)
	code := Execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestShow(t *testing.T) {
	e := newEnv(t, "")
	path := e.file(t, "n.md", doc)

	code, out, _ := e.run("show", path, "4")
	require.Equal(t, 0, code)
	assert.Equal(t, "tag: go file=main.go\nlines: 3-5\nmeta: file=main.go\n---\npackage main\n", out)

	code, out, _ = e.run("show", path, "1")
	assert.Equal(t, 0, code)
	assert.Equal(t, notInFenceMessage+"\n", out)
}

func TestEditWithCommand(t *testing.T) {
	e := newEnv(t, "[editor]\ncommand = '''printf 'x = 10\\ny = 20' > \"{{file}}\"'''\n")
	path := e.file(t, "n.md", doc)

	code, _, stderr := e.run("edit", path, "10")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "updated block at lines 9-12")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(doc, "x = 1\ny = 2", "x = 10\ny = 20", 1), string(data))
}

func TestEditUnchanged(t *testing.T) {
	e := newEnv(t, "[editor]\ncommand = 'true'\n")
	path := e.file(t, "n.md", doc)

	code, _, stderr := e.run("edit", path, "4")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "no changes")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestEditNotInFence(t *testing.T) {
	e := newEnv(t, "[editor]\ncommand = 'exit 3'\n")
	path := e.file(t, "n.md", doc)

	code, out, _ := e.run("edit", path, "7")
	assert.Equal(t, 0, code)
	assert.Equal(t, notInFenceMessage+"\n", out)
}

func TestEditBadArguments(t *testing.T) {
	e := newEnv(t, "")
	path := e.file(t, "n.md", doc)

	code, _, stderr := e.run("edit", path, "zero")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid line")

	code, _, _ = e.run("edit", filepath.Join(e.dir, "missing.md"), "1")
	assert.Equal(t, 1, code)
}

func TestList(t *testing.T) {
	e := newEnv(t, "")
	path := e.file(t, "n.md", doc+"\n```sh\necho open\n")

	code, out, stderr := e.run("list", path)
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"#", "LINES", "LANG", "BODY", "INFO"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "3-5", "go", "1", "line", "go", "file=main.go"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "9-12", "py", "2", "lines", "py"}, strings.Fields(lines[2]))
	assert.Contains(t, stderr, "fence opened at line 14 is never closed")

	code, out, _ = e.run("list", path, "--lang", "p*")
	require.Equal(t, 0, code)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "py", strings.Fields(lines[1])[2])

	code, _, _ = e.run("list", path, "--lang", "[")
	assert.Equal(t, 1, code)
}

func TestOpen(t *testing.T) {
	e := newEnv(t, "[launch]\nexecute_template = 'echo \"{{filepath}} {{folderpath}} {{line}}:{{ch}}\"'\n")
	path := e.file(t, "notes/n.md", doc)

	code, out, stderr := e.run("open", path, "--vault", e.dir, "--line", "3", "--ch", "2")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "notes/n.md notes 3:2\n", out)
}

func TestOpenURL(t *testing.T) {
	e := newEnv(t, "[launch]\nurl_opener = 'echo \"{{url}}\"'\n")
	path := e.file(t, "n.md", doc)

	code, out, stderr := e.run("open", path, "--url")
	require.Equal(t, 0, code, stderr)

	root, err := filepath.Abs(e.dir)
	require.NoError(t, err)
	assert.Equal(t, "vscode://file/"+root+"\nvscode://file/"+root+"/n.md\n", out)
}

func TestOpenFailureIsReported(t *testing.T) {
	e := newEnv(t, "[launch]\nexecute_template = 'exit 4'\n")
	path := e.file(t, "n.md", doc)

	code, _, stderr := e.run("open", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "exited with 4")
}

func TestParseLine(t *testing.T) {
	n, err := parseLine("1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, bad := range []string{"0", "-2", "x", ""} {
		_, err := parseLine(bad)
		assert.Error(t, err, bad)
	}
}
