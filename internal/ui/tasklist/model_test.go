package tasklist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/tests/testutil"
)

func newTestModel(t *testing.T, titles ...string) (Model, *store.Storage, string) {
	t.Helper()

	s, path := testutil.NewTestStorage(t)
	for _, title := range titles {
		require.NoError(t, s.Add(model.NewTask(title)))
	}

	m := New(s, keys.DefaultKeyMap(), Options{TimeFormat: time.RFC3339})
	return m, s, path
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadsTasks(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b")

	tasks := m.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Title)
	assert.Equal(t, "b", tasks[1].Title)
}

func TestModel_CompleteSelected(t *testing.T) {
	m, s, _ := newTestModel(t, "a", "b")

	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("x"))

	assert.Equal(t, "Task marked as completed!", m.Status())
	assert.NoError(t, m.Err())

	tasks := s.List()
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed)
	assert.True(t, m.Tasks()[1].Completed)
}

func TestModel_DeleteSelected(t *testing.T) {
	m, s, path := newTestModel(t, "a", "b", "c")

	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("d"))

	assert.Equal(t, "Task deleted successfully!", m.Status())
	require.Len(t, s.List(), 2)
	assert.Len(t, m.Tasks(), 2)

	// Deleting again removes the new last row; the cursor stayed in range.
	m, _ = press(t, m, runes("d"))
	assert.Len(t, s.List(), 1)
	assert.Equal(t, "a", s.List()[0].Title)

	reopened, err := store.Open(path)
	require.NoError(t, err)
	assert.Len(t, reopened.List(), 1)
}

func TestModel_ActionsOnEmptyListDoNothing(t *testing.T) {
	m, s, path := newTestModel(t)

	m, _ = press(t, m, runes("x"))
	m, _ = press(t, m, runes("d"))

	assert.Empty(t, m.Status())
	assert.Empty(t, s.List())
	assert.NoFileExists(t, path)
	assert.Contains(t, m.View(), "No tasks found.")
}

func TestModel_WriteErrorShownInStatusBar(t *testing.T) {
	m, _, path := newTestModel(t, "a")

	dir := filepath.Dir(path)
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("blocker"), 0o644))

	m, cmd := press(t, m, runes("x"))
	assert.Nil(t, cmd)

	var writeErr *store.WriteError
	require.True(t, errors.As(m.Err(), &writeErr))
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_HelpToggle(t *testing.T) {
	m, s, _ := newTestModel(t, "a")

	m, _ = press(t, m, runes("?"))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	// While help is open, action keys only close the overlay.
	m, _ = press(t, m, runes("x"))
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
	assert.False(t, s.List()[0].Completed)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t, "a")

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewShowsRows(t *testing.T) {
	m, _, _ := newTestModel(t, "buy milk", "walk dog")
	m, _ = press(t, m, runes("x"))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "1. [x] buy milk")
	assert.Contains(t, view, "2. [ ] walk dog")
	assert.Contains(t, view, "2 tasks, 1 done")
}
