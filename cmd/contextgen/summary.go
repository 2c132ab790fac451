// cmd/contextgen/summary.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/noricha-vr/ContextGenerator/internal/contextgen"
	"github.com/noricha-vr/ContextGenerator/internal/preset"
)

// printSummaryListSection prints a titled, path-sorted list.
func printSummaryListSection[K comparable, V any](
	writer io.Writer,
	titleFormat string,
	items map[K]V,
	getPath func(K) string,
	getDetails func(K, V) string,
) {
	fmt.Fprintf(writer, titleFormat, len(items))
	if len(items) == 0 {
		return
	}
	keys := make([]K, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return getPath(keys[i]) < getPath(keys[j]) })
	for _, k := range keys {
		pathStr := getPath(k)
		detailsStr := ""
		if getDetails != nil {
			detailsStr = getDetails(k, items[k])
		}
		if detailsStr != "" {
			fmt.Fprintf(writer, "- %s: %s\n", pathStr, detailsStr)
		} else {
			fmt.Fprintf(writer, "- %s\n", pathStr)
		}
	}
}

// printSummary writes the per-extension statistics table and grand total.
func printSummary(w io.Writer, res *contextgen.Result) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Fprintln(w, "\n--- Summary ---")
	fmt.Fprintf(w, "Output: %s (%s)\n", res.OutputPath, humanize.Bytes(uint64(len(res.Document))))

	stats := res.Stats
	if len(stats.ByExtension) == 0 {
		fmt.Fprintln(w, "No files included in the output.")
	} else {
		fmt.Fprintf(w, "%-12s %8s %14s\n", "Extension", "Files", "Characters")
		for _, ext := range stats.Extensions() {
			st := stats.ByExtension[ext]
			label := ext
			if label == "" {
				label = "(none)"
			}
			fmt.Fprintf(w, "%-12s %8d %14s\n", label, st.Count, contextgen.FormatCount(st.Chars))
		}
	}
	fmt.Fprintf(w, "Total files: %d\n", stats.FileCount())
	fmt.Fprint(w, "Total characters: ")
	green.Fprintln(w, stats.TotalDisplay())

	if len(stats.Skipped) > 0 {
		skipped := make(map[string]error, len(stats.Skipped))
		for _, s := range stats.Skipped {
			skipped[s.RelPath] = s.Err
		}
		printSummaryListSection(w, yellow.Sprintf("%s", "\nSkipped files (%d):\n"), skipped,
			func(path string) string { return path },
			func(path string, err error) string { return err.Error() })
	}

	fmt.Fprintln(w, "---------------")
}

// printPreset shows a stored preset as indented JSON.
func printPreset(w io.Writer, path string, p *preset.Preset) error {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "Preset %s\n", path)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(p)
}
