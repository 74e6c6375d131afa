package stats

import (
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Group represents aggregate statistics for one extension or directory.
type Group struct {
	// Count is the number of files in the group.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// Item is a single file or directory path with its size.
type Item struct {
	// Path is the file or directory path, relative to the walked root.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Stats holds the aggregated result of a walk.
type Stats struct {
	// FileCount is the total number of files or directories analyzed.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all analyzed files.
	TotalBytes int64 `json:"total_bytes"`
	// Extensions maps file extensions to their statistics.
	Extensions map[string]Group `json:"extensions"`
	// Top contains the N largest files or directories, smallest first.
	Top []Item `json:"top"`
	// ErrorCount is the number of entries skipped due to errors.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the wall-clock duration of the walk.
	Elapsed time.Duration `json:"elapsed"`
	// ByDir indicates aggregation by directory instead of by file.
	ByDir bool `json:"by_dir"`
	// TopN is the number of top results tracked.
	TopN int `json:"top_n"`
}

// Options configures a statistics walk.
type Options struct {
	// Root is the directory to analyze.
	Root string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// TopN is the number of top results to track.
	TopN int
	// Depth is the maximum traversal depth (0 = unlimited).
	Depth int
	// ByDir aggregates by containing directory instead of by file.
	ByDir bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug enables debug output.
	Debug bool
}

// collector aggregates results from concurrent fastwalk callbacks. All
// mutation goes through the mutex since fastwalk invokes its callback from
// multiple goroutines.
type collector struct {
	mu         sync.Mutex
	topN       int
	byDir      bool
	groups     map[string]Group
	items      []Item
	fileCount  int64
	totalBytes int64
	errorCount int64
}

func newCollector(topN int, byDir bool) *collector {
	return &collector{
		topN:   topN,
		byDir:  byDir,
		groups: make(map[string]Group),
	}
}

func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorCount++
}

// add records one file. In directory mode key is the containing directory;
// otherwise key is the file's extension and path is tracked individually.
func (c *collector) add(path, key string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalBytes += size

	group := c.groups[key]
	group.Count++
	group.Size += size
	c.groups[key] = group

	if !c.byDir {
		c.fileCount++
		c.items = append(c.items, Item{Path: path, Size: size})
	}
}

// snapshot returns the running file and byte counters for progress display.
func (c *collector) snapshot() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.byDir {
		return int64(len(c.groups)), c.totalBytes
	}

	return c.fileCount, c.totalBytes
}

// finalize sorts the collected items by size, trims to the top N, and
// reverses them so the largest prints last.
func (c *collector) finalize() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		top       []Item
		groups    map[string]Group
		fileCount int64
	)

	if c.byDir {
		top = make([]Item, 0, len(c.groups))
		for dir, group := range c.groups {
			top = append(top, Item{Path: dir, Size: group.Size})
		}

		groups = make(map[string]Group)
		fileCount = int64(len(c.groups))
	} else {
		top = c.items
		groups = c.groups
		fileCount = c.fileCount
	}

	sort.Slice(top, func(i, j int) bool {
		return top[i].Size > top[j].Size
	})
	if len(top) > c.topN {
		top = top[:c.topN]
	}

	// Smallest first, so a terminal scrollback ends on the largest.
	for i, j := 0, len(top)-1; i < j; i, j = i+1, j-1 {
		top[i], top[j] = top[j], top[i]
	}

	for i := range top {
		top[i].Path = filepath.ToSlash(top[i].Path)
	}

	return &Stats{
		FileCount:  fileCount,
		TotalBytes: c.totalBytes,
		Extensions: groups,
		Top:        top,
		ErrorCount: c.errorCount,
		ByDir:      c.byDir,
		TopN:       c.topN,
	}
}
