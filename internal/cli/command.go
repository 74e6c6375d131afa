package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/idelchi/dux/internal/config"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// DefaultExcludes contains the default exclusion patterns for statistics
// mode.
var DefaultExcludes = []string{`.*\.git/.*`, `.*node_modules/.*`}

// options holds the parsed command line.
type options struct {
	// Path is the file or directory to inspect.
	Path string
	// List prints the direct children and exits.
	List bool
	// Recursive prints every descendant and exits.
	Recursive bool
	// Size prints the total size and exits.
	Size bool
	// Stats collects per-extension statistics and exits.
	Stats bool
	// Output is the output format (table or json).
	Output string
	// TopN is the number of top results in statistics mode.
	TopN int
	// Depth is the maximum traversal depth in statistics mode (0=unlimited).
	Depth int
	// Excludes contains regex patterns to exclude in statistics mode.
	Excludes []string
	// MinSize is the minimum file size in statistics mode.
	MinSize int64
	// ByDir aggregates statistics by directory instead of files.
	ByDir bool
	// Debug enables debug output.
	Debug bool
	// Version shows the version and exits.
	Version bool
}

func help() {
	fmt.Println(heredoc.Doc(`
		dux inspects disk usage: it lists directory contents and computes
		aggregate byte sizes.

		Usage:

			dux [flags] [path]

		Positional Arguments:
		  path                   File or directory to inspect. Defaults to the current directory.

		Modes:
		  Without a mode flag, dux opens an interactive browser when stdout is a
		  terminal, and otherwise prints the direct children and the total size.
		  The --list, --recursive and --size flags print a single result and exit.
		  The --stats flag walks the tree in parallel and reports statistics by
		  file extension (or by directory with --dirs).

		Defaults for --output, --top, --exclude and --min-size can be placed in
		a dux.yaml file inside the user config directory. Explicit flags win.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		opts       options
		minSizeStr string
	)

	allowedOutputs := []string{"table", "json"}

	pflag.BoolVarP(&opts.List, "list", "l", false, "Print the direct children of the path")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", false, "Print every descendant of the path, depth-first")
	pflag.BoolVarP(&opts.Size, "size", "s", false, "Print the total size of the path")
	pflag.BoolVar(&opts.Stats, "stats", false, "Report statistics by file extension")
	pflag.StringVarP(&opts.Output, "output", "o", "table", "Output format: json or table")
	pflag.IntVarP(&opts.TopN, "top", "t", 10, "Number of top files to display in statistics mode")
	pflag.IntVarP(&opts.Depth, "depth", "d", 0, "Maximum traversal depth in statistics mode (0=unlimited)")
	pflag.StringSliceVarP(&opts.Excludes, "exclude", "e", DefaultExcludes, "Regex patterns to exclude in statistics mode")
	pflag.StringVar(&minSizeStr, "min-size", "0KB", "Minimum file size in statistics mode (e.g., 1KB)")
	pflag.BoolVar(&opts.ByDir, "dirs", false, "Aggregate statistics by directory instead of individual files")
	pflag.BoolVar(&opts.Debug, "debug", false, "Enable debug output")
	pflag.BoolVarP(&opts.Version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if opts.Version {
		fmt.Println(c.version)

		return nil
	}

	if err := applyConfig(&opts, &minSizeStr); err != nil {
		return err
	}

	if !slices.Contains(allowedOutputs, opts.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", opts.Output, allowedOutputs)
	}

	if opts.Depth < 0 {
		return errors.New("depth cannot be negative")
	}

	modes := 0
	for _, enabled := range []bool{opts.List, opts.Recursive, opts.Size, opts.Stats} {
		if enabled {
			modes++
		}
	}

	if modes > 1 {
		return errors.New("at most one of --list, --recursive, --size and --stats may be given")
	}

	if pflag.NArg() == 0 {
		opts.Path = "."
	} else {
		opts.Path = pflag.Args()[0]
	}

	if minSizeStr != "" {
		size, err := humanize.ParseBytes(minSizeStr)
		if err != nil {
			return fmt.Errorf("invalid min-size: %w", err)
		}

		opts.MinSize = int64(size)
	}

	return logic(opts)
}

// applyConfig fills in config-file defaults for flags the user did not set
// explicitly.
func applyConfig(opts *options, minSizeStr *string) error {
	dir, err := config.Dir()
	if err != nil {
		return nil
	}

	cfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil
		}

		return fmt.Errorf("loading config: %w", err)
	}

	if !pflag.Lookup("output").Changed && cfg.Output != "" {
		opts.Output = cfg.Output
	}

	if !pflag.Lookup("top").Changed && cfg.TopN > 0 {
		opts.TopN = cfg.TopN
	}

	if !pflag.Lookup("exclude").Changed && len(cfg.Excludes) > 0 {
		opts.Excludes = cfg.Excludes
	}

	if !pflag.Lookup("min-size").Changed && cfg.MinSize != "" {
		*minSizeStr = cfg.MinSize
	}

	return nil
}
