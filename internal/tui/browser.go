// Package tui implements the interactive directory browser.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/idelchi/dux/internal/dux"
)

// Entry is one row of the browser: a direct child of the current directory.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	Size  int64
}

// loadedMsg carries the result of scanning a directory.
type loadedMsg struct {
	path    string
	entries []Entry
	total   int64
}

// errMsg carries a failed scan.
type errMsg struct {
	err error
}

// Browser is the bubbletea model for the directory browser.
type Browser struct {
	path    string
	entries []Entry
	total   int64
	cursor  int
	err     error
	loading bool

	width  int
	height int

	keys KeyMap
}

// NewBrowser creates a browser rooted at path.
func NewBrowser(path string) Browser {
	return Browser{
		path:    path,
		loading: true,
		width:   80,
		height:  24,
		keys:    DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd {
	return loadDir(b.path)
}

// loadDir scans path and reports its children with their sizes. The
// traversal runs synchronously inside the command; the redraw loop blocks on
// it, which is the intended behavior for this tool.
func loadDir(path string) tea.Cmd {
	return func() tea.Msg {
		children, err := dux.List(path)
		if err != nil {
			return errMsg{err: err}
		}

		entries := make([]Entry, 0, len(children))

		var total int64

		for _, child := range children {
			info, err := os.Lstat(child)
			if err != nil {
				return errMsg{err: fmt.Errorf("inspecting %q: %w", child, err)}
			}

			size := info.Size()

			if info.IsDir() {
				size, err = dux.TotalSize(child)
				if err != nil {
					return errMsg{err: err}
				}
			}

			entries = append(entries, Entry{
				Path:  child,
				Name:  filepath.Base(child),
				IsDir: info.IsDir(),
				Size:  size,
			})

			total += size
		}

		return loadedMsg{path: path, entries: entries, total: total}
	}
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height

		return b, nil

	case loadedMsg:
		b.path = msg.path
		b.entries = msg.entries
		b.total = msg.total
		b.cursor = 0
		b.err = nil
		b.loading = false

		return b, nil

	case errMsg:
		b.err = msg.err
		b.loading = false

		return b, nil

	case tea.KeyMsg:
		return b.onKey(msg)
	}

	return b, nil
}

func (b Browser) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit

	case key.Matches(msg, b.keys.Refresh):
		b.loading = true

		return b, loadDir(b.path)

	case key.Matches(msg, b.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}

	case key.Matches(msg, b.keys.Down):
		if b.cursor < len(b.entries)-1 {
			b.cursor++
		}

	case key.Matches(msg, b.keys.Right), key.Matches(msg, b.keys.Select):
		if b.cursor < len(b.entries) && b.entries[b.cursor].IsDir {
			b.loading = true

			return b, loadDir(b.entries[b.cursor].Path)
		}

	case key.Matches(msg, b.keys.Left):
		parent := filepath.Dir(b.path)
		if parent != b.path {
			b.loading = true

			return b, loadDir(parent)
		}
	}

	return b, nil
}

// View implements tea.Model.
func (b Browser) View() string {
	var out strings.Builder

	out.WriteString(TitleStyle.Render(b.path))
	out.WriteString("\n")

	if b.err != nil {
		out.WriteString(ErrorStyle.Render("✗ " + b.err.Error()))
		out.WriteString("\n")
		out.WriteString(HelpStyle.Render("r retry • ← parent • q quit"))

		return out.String()
	}

	if b.loading {
		out.WriteString(TotalStyle.Render("scanning…"))
		out.WriteString("\n")

		return out.String()
	}

	out.WriteString(TotalStyle.Render(fmt.Sprintf("total %s", humanize.IBytes(uint64(b.total)))))
	out.WriteString("\n\n")

	if len(b.entries) == 0 {
		out.WriteString(UnselectedStyle.Render("(empty)"))
		out.WriteString("\n")
	}

	for i, entry := range b.entries {
		cursor := "  "
		style := UnselectedStyle

		if i == b.cursor {
			cursor = "● "
			style = SelectedStyle
		}

		name := entry.Name
		if entry.IsDir {
			name += "/"
		}

		out.WriteString(cursor)
		out.WriteString(style.Render(fmt.Sprintf("%-40s", name)))
		out.WriteString(SizeStyle.Render(humanize.IBytes(uint64(entry.Size))))
		out.WriteString("\n")
	}

	out.WriteString(HelpStyle.Render(b.keys.HelpText()))

	return out.String()
}

// Run starts the browser at path and blocks until the user quits.
func Run(path string) error {
	program := tea.NewProgram(NewBrowser(path), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}

	return nil
}
