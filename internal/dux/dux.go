package dux

import (
	"fmt"
	"os"
	"path/filepath"
)

// pending is a discovered entry waiting to be reported and, for
// directories, expanded.
type pending struct {
	path string
	dir  bool
}

// List returns the direct children of path, one entry per child, in
// enumeration order. If path is not a directory (a regular file or a
// symbolic link, per its own link metadata), the result is a singleton
// containing path itself.
func List(path string) ([]string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting %q: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", path, err)
	}

	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		children = append(children, filepath.Join(path, entry.Name()))
	}

	return children, nil
}

// ListRecursive returns every descendant of path — directories and files at
// every depth — in depth-first pre-order: each entry appears before its own
// children. Symbolic links are listed but never descended into, so cyclic
// links cannot loop the traversal. A non-directory path yields a singleton.
//
// The whole call fails on the first unreadable path; no partial result is
// returned.
func ListRecursive(path string) ([]string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting %q: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	stack, err := pushChildren(path, nil)
	if err != nil {
		return nil, err
	}

	var out []string

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out = append(out, next.path)

		if next.dir {
			stack, err = pushChildren(next.path, stack)
			if err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// TotalSize returns the cumulative byte length of every regular file and
// symbolic link under path. Directories contribute no bytes of their own,
// and symbolic links contribute their own link-level length rather than the
// target's. A non-directory path returns its own lstat size.
//
// The whole call fails on the first unreadable path; no partial total is
// returned.
func TotalSize(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, fmt.Errorf("inspecting %q: %w", path, err)
	}

	if !info.IsDir() {
		return info.Size(), nil
	}

	var total int64

	stack := []string{path}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return 0, fmt.Errorf("reading directory %q: %w", dir, err)
		}

		for _, entry := range entries {
			child := filepath.Join(dir, entry.Name())

			if entry.IsDir() {
				stack = append(stack, child)

				continue
			}

			// DirEntry.Info reports the link itself for symlinks.
			childInfo, err := entry.Info()
			if err != nil {
				return 0, fmt.Errorf("inspecting %q: %w", child, err)
			}

			total += childInfo.Size()
		}
	}

	return total, nil
}

// pushChildren reads dir and pushes its entries onto stack in reverse
// enumeration order, so popping yields them first-to-last before any
// later sibling of dir.
func pushChildren(dir string, stack []pending) ([]pending, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]

		stack = append(stack, pending{
			path: filepath.Join(dir, entry.Name()),
			dir:  entry.IsDir(),
		})
	}

	return stack, nil
}
