package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func sampleTree(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "root")

	writeFile(t, filepath.Join(root, "file"), "test")
	writeFile(t, filepath.Join(root, "dir", "other_file"), "testing test")
	writeFile(t, filepath.Join(root, "dir", "and_another_file"), "testing test of tests")

	return root
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// loaded initializes a browser at path and applies the initial scan.
func loaded(t *testing.T, path string) Browser {
	t.Helper()

	browser := NewBrowser(path)

	cmd := browser.Init()
	require.NotNil(t, cmd)

	model, _ := browser.Update(cmd())

	out, ok := model.(Browser)
	require.True(t, ok)
	require.NoError(t, out.err)
	require.False(t, out.loading)

	return out
}

func TestBrowser_InitialScan(t *testing.T) {
	root := sampleTree(t)

	browser := loaded(t, root)

	require.Len(t, browser.entries, 2)
	assert.Equal(t, int64(37), browser.total)

	// os.ReadDir order: dir before file.
	assert.Equal(t, "dir", browser.entries[0].Name)
	assert.True(t, browser.entries[0].IsDir)
	assert.Equal(t, int64(33), browser.entries[0].Size)
	assert.Equal(t, "file", browser.entries[1].Name)
	assert.Equal(t, int64(4), browser.entries[1].Size)
}

func TestBrowser_CursorNavigation(t *testing.T) {
	browser := loaded(t, sampleTree(t))

	model, _ := browser.Update(keyMsg("down"))
	browser = model.(Browser)
	assert.Equal(t, 1, browser.cursor)

	// Clamped at the last entry.
	model, _ = browser.Update(keyMsg("j"))
	browser = model.(Browser)
	assert.Equal(t, 1, browser.cursor)

	model, _ = browser.Update(keyMsg("k"))
	browser = model.(Browser)
	assert.Equal(t, 0, browser.cursor)

	model, _ = browser.Update(keyMsg("up"))
	browser = model.(Browser)
	assert.Equal(t, 0, browser.cursor)
}

func TestBrowser_DescendAndReturn(t *testing.T) {
	root := sampleTree(t)

	browser := loaded(t, root)

	// Cursor starts on "dir"; enter descends into it.
	model, cmd := browser.Update(keyMsg("enter"))
	browser = model.(Browser)
	require.True(t, browser.loading)
	require.NotNil(t, cmd)

	model, _ = browser.Update(cmd())
	browser = model.(Browser)

	assert.Equal(t, filepath.Join(root, "dir"), browser.path)
	require.Len(t, browser.entries, 2)
	assert.Equal(t, int64(33), browser.total)

	// Left goes back to the parent.
	model, cmd = browser.Update(keyMsg("left"))
	browser = model.(Browser)
	require.NotNil(t, cmd)

	model, _ = browser.Update(cmd())
	browser = model.(Browser)

	assert.Equal(t, root, browser.path)
}

func TestBrowser_EnterOnFileDoesNothing(t *testing.T) {
	browser := loaded(t, sampleTree(t))

	model, _ := browser.Update(keyMsg("down"))
	browser = model.(Browser)
	require.False(t, browser.entries[browser.cursor].IsDir)

	model, cmd := browser.Update(keyMsg("enter"))
	browser = model.(Browser)

	assert.Nil(t, cmd)
	assert.False(t, browser.loading)
}

func TestBrowser_Quit(t *testing.T) {
	browser := loaded(t, sampleTree(t))

	_, cmd := browser.Update(keyMsg("q"))
	require.NotNil(t, cmd)

	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowser_ScanErrorShowsErrorState(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	browser := NewBrowser(missing)

	model, _ := browser.Update(browser.Init()())
	browser = model.(Browser)

	require.Error(t, browser.err)
	assert.Contains(t, browser.View(), "✗")
}

func TestBrowser_ViewListsEntries(t *testing.T) {
	browser := loaded(t, sampleTree(t))

	view := browser.View()

	assert.Contains(t, view, "dir/")
	assert.Contains(t, view, "file")
	assert.Contains(t, view, "37 B")
}

func TestBrowser_Refresh(t *testing.T) {
	root := sampleTree(t)

	browser := loaded(t, root)

	writeFile(t, filepath.Join(root, "new_file"), "12345")

	model, cmd := browser.Update(keyMsg("r"))
	browser = model.(Browser)
	require.NotNil(t, cmd)

	model, _ = browser.Update(cmd())
	browser = model.(Browser)

	assert.Len(t, browser.entries, 3)
	assert.Equal(t, int64(42), browser.total)
}
