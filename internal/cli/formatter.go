package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dux/internal/stats"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON writes value as indented JSON.
func PrintJSON(value any, writer io.Writer) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintListing writes entries one per line, or as a JSON array.
func PrintListing(entries []string, format string, writer io.Writer) error {
	if format == "json" {
		return PrintJSON(entries, writer)
	}

	for _, entry := range entries {
		if _, err := fmt.Fprintln(writer, entry); err != nil {
			return err
		}
	}

	return nil
}

// sizeReport is the JSON shape of a total-size result.
type sizeReport struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
	Human string `json:"human"`
}

// PrintSize writes the total size of path in the requested format.
func PrintSize(path string, bytes int64, format string, writer io.Writer) error {
	human := humanize.IBytes(uint64(bytes))

	if format == "json" {
		return PrintJSON(sizeReport{Path: path, Bytes: bytes, Human: human}, writer)
	}

	_, err := fmt.Fprintf(writer, "%s\t%s (%d bytes)\n", path, human, bytes)

	return err
}

// PrintStats writes statistics in human-readable table format.
func PrintStats(result *stats.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	if !result.ByDir {
		fmt.Fprintln(w, "\nTop extensions:\t\t")

		extList := make([]string, 0, len(result.Extensions))
		for ext := range result.Extensions {
			extList = append(extList, ext)
		}

		sort.Slice(extList, func(i, j int) bool {
			return result.Extensions[extList[i]].Size < result.Extensions[extList[j]].Size
		})

		startIdx := 0
		if len(extList) > result.TopN {
			startIdx = len(extList) - result.TopN
		}

		displayList := extList[startIdx:]
		for i, ext := range displayList {
			group := result.Extensions[ext]

			pct := 0.0
			if result.TotalBytes > 0 {
				pct = 100.0 * float64(group.Size) / float64(result.TotalBytes)
			}

			if ext == "" {
				ext = "\"\""
			}

			fmt.Fprintf(w, "  %d) %s:\t%d files, %s (%.1f%%)\n",
				len(displayList)-i, ext, group.Count, humanize.IBytes(uint64(group.Size)), pct)
		}
	}

	if result.ByDir {
		fmt.Fprintln(w, "\nTop directories:\t\t")
	} else {
		fmt.Fprintln(w, "\nTop files:\t\t")
	}

	for i, item := range result.Top {
		pct := 0.0
		if result.TotalBytes > 0 {
			pct = 100.0 * float64(item.Size) / float64(result.TotalBytes)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
			len(result.Top)-i, item.Path, humanize.IBytes(uint64(item.Size)), pct)
	}

	fmt.Fprintln(w, "\nStats:\t\t")

	if result.ByDir {
		fmt.Fprintf(w, "Total directories:\t%d\n", result.FileCount)
	} else {
		fmt.Fprintf(w, "Total files:\t%d\n", result.FileCount)
	}

	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(result.TotalBytes)), result.TotalBytes)

	if result.ErrorCount > 0 {
		fmt.Fprintf(w, "Skipped:\t%d entries\n", result.ErrorCount)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
