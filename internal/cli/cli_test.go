package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/export"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/ui/prompt"
	"github.com/nhle/todo/internal/ui/tasklist"
	"github.com/nhle/todo/tests/testutil"
)

type harness struct {
	dir        string
	dataFile   string
	configPath string
	a          *app
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	return &harness{
		dir:        dir,
		dataFile:   filepath.Join(dir, "data", "tasks.json"),
		configPath: filepath.Join(dir, "config.yaml"),
		a: &app{
			askTitle: func() (string, error) {
				t.Fatal("unexpected prompt")
				return "", nil
			},
			runBrowser: func(*store.Storage, tasklist.Options) error {
				t.Fatal("unexpected browser")
				return nil
			},
		},
	}
}

// run executes the command tree with args and returns stdout.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(h.a)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--config", h.configPath,
		"--data-file", h.dataFile,
		"--no-color",
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := h.run(t, args...)
	require.NoError(t, err)
	return out
}

func TestCLI_Scenario(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "No tasks found.\n", h.mustRun(t, "list"))

	assert.Equal(t, "Task added successfully!\n", h.mustRun(t, "add", "buy", "milk"))
	h.mustRun(t, "add", "walk dog")

	out := h.mustRun(t, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Tasks:", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1. [ ] buy milk (Created: "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2. [ ] walk dog (Created: "), lines[2])

	assert.Equal(t, "Task marked as completed!\n", h.mustRun(t, "complete", "2"))
	out = h.mustRun(t, "list")
	assert.Contains(t, out, "2. [x] walk dog")

	assert.Equal(t, "Task deleted successfully!\n", h.mustRun(t, "delete", "1"))
	out = h.mustRun(t, "list")
	assert.Contains(t, out, "1. [x] walk dog")
	assert.NotContains(t, out, "buy milk")
}

func TestCLI_NotFoundIsNotAnError(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "only")

	for _, args := range [][]string{
		{"complete", "5"},
		{"delete", "2"},
		{"complete", "0"},
		{"delete", "--", "-3"},
	} {
		out, err := h.run(t, args...)
		require.NoError(t, err, "args %v", args)
		assert.Equal(t, "Task not found!\n", out, "args %v", args)
	}

	assert.Contains(t, h.mustRun(t, "list"), "1. [ ] only")
}

func TestCLI_InvalidID(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "complete", "first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task id")

	_, err = h.run(t, "delete")
	assert.Error(t, err)
}

func TestCLI_ParseErrorFails(t *testing.T) {
	h := newHarness(t)
	testutil.WriteTasksFile(t, h.dataFile, `{"not": "a list"}`)

	_, err := h.run(t, "list")
	require.Error(t, err)

	var parseErr *store.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestCLI_AddPromptsWithoutArgs(t *testing.T) {
	h := newHarness(t)
	h.a.askTitle = func() (string, error) { return "prompted task", nil }

	assert.Equal(t, "Task added successfully!\n", h.mustRun(t, "add"))
	assert.Contains(t, h.mustRun(t, "list"), "1. [ ] prompted task")
}

func TestCLI_AddPromptAborted(t *testing.T) {
	h := newHarness(t)
	h.a.askTitle = func() (string, error) { return "", prompt.ErrAborted }

	_, err := h.run(t, "add")
	require.ErrorIs(t, err, prompt.ErrAborted)
	assert.NoFileExists(t, h.dataFile)
}

func TestCLI_ConfigFileSetsDataFile(t *testing.T) {
	h := newHarness(t)
	configured := filepath.Join(h.dir, "elsewhere", "mine.json")
	require.NoError(t, os.WriteFile(h.configPath, []byte("data_file: "+configured+"\n"), 0o644))

	cmd := newRootCommand(h.a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", h.configPath, "add", "configured"})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, configured)
	assert.NoFileExists(t, h.dataFile)
}

func TestCLI_InvalidLogLevel(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "--log-level", "chatty", "list")
	assert.Error(t, err)
}

func TestCLI_Browse(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "a")

	var got *store.Storage
	h.a.runBrowser = func(s *store.Storage, opts tasklist.Options) error {
		got = s
		assert.False(t, opts.Color)
		return nil
	}

	h.mustRun(t, "browse")
	require.NotNil(t, got)
	assert.Len(t, got.List(), 1)
}

func TestCLI_Export(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "a")
	h.mustRun(t, "add", "b")
	h.mustRun(t, "complete", "1")

	before := testutil.ReadTasksFile(t, h.dataFile)

	dbPath := filepath.Join(h.dir, "export", "tasks.db")
	out := h.mustRun(t, "export", dbPath)
	assert.Contains(t, out, "Exported 2 tasks to "+dbPath)

	// The task file is left as it was.
	assert.Equal(t, before, testutil.ReadTasksFile(t, h.dataFile))

	exp, err := export.Open(dbPath)
	require.NoError(t, err)
	defer exp.Close()

	snaps, err := exp.Snapshots(t.Context())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, h.dataFile, snaps[0].SourcePath)

	rows, err := exp.SnapshotTasks(t.Context(), snaps[0].ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Completed)
	assert.Equal(t, "b", rows[1].Title)
}

func TestCLI_ConfigInit(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "config", "init")
	assert.Contains(t, out, "Wrote config to "+h.configPath)
	assert.FileExists(t, h.configPath)

	out = h.mustRun(t, "config", "init")
	assert.Contains(t, out, "Config already exists")

	assert.Equal(t, h.configPath+"\n", h.mustRun(t, "config", "path"))
}

func TestCLI_ConfigCommandsIgnoreBrokenConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.configPath, []byte("data_file: [unterminated"), 0o644))

	_, err := h.run(t, "list")
	require.Error(t, err)

	assert.Equal(t, h.configPath+"\n", h.mustRun(t, "config", "path"))
	assert.Contains(t, h.mustRun(t, "config", "init"), "Config already exists")
}
