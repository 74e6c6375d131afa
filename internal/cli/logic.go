package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dux/internal/dux"
	"github.com/idelchi/dux/internal/stats"
	"github.com/idelchi/dux/internal/tui"
)

// logic dispatches the parsed options to the requested mode.
func logic(opts options) error {
	switch {
	case opts.List:
		entries, err := dux.List(opts.Path)
		if err != nil {
			return err
		}

		return PrintListing(entries, opts.Output, os.Stdout)

	case opts.Recursive:
		entries, err := dux.ListRecursive(opts.Path)
		if err != nil {
			return err
		}

		return PrintListing(entries, opts.Output, os.Stdout)

	case opts.Size:
		total, err := dux.TotalSize(opts.Path)
		if err != nil {
			return err
		}

		return PrintSize(opts.Path, total, opts.Output, os.Stdout)

	case opts.Stats:
		return runStats(opts)
	}

	return browse(opts)
}

// browse opens the interactive browser on a terminal, otherwise prints the
// shallow listing followed by the total size.
func browse(opts options) error {
	info, err := os.Stat(opts.Path)
	if err != nil {
		return fmt.Errorf("accessing path %q: %w", opts.Path, err)
	}

	if info.IsDir() && isatty.IsTerminal(os.Stdout.Fd()) {
		return tui.Run(opts.Path)
	}

	entries, err := dux.List(opts.Path)
	if err != nil {
		return err
	}

	total, err := dux.TotalSize(opts.Path)
	if err != nil {
		return err
	}

	if err := PrintListing(entries, opts.Output, os.Stdout); err != nil {
		return err
	}

	return PrintSize(opts.Path, total, opts.Output, os.Stdout)
}

// runStats performs the parallel statistics walk with an in-place progress
// line on interactive terminals.
func runStats(opts options) error {
	enableProgress := strings.ToLower(opts.Output) != "json" &&
		!opts.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	ctx := context.Background()

	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes)))
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := stats.Run(ctx, stats.Options{
		Root:     opts.Path,
		Excludes: opts.Excludes,
		MinSize:  opts.MinSize,
		TopN:     opts.TopN,
		Depth:    opts.Depth,
		ByDir:    opts.ByDir,
		Debug:    opts.Debug,
	}, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch strings.ToLower(opts.Output) {
	case "json":
		return PrintJSON(result, os.Stdout)
	default:
		return PrintStats(result, os.Stdout)
	}
}
