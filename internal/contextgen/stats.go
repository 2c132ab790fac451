// internal/contextgen/stats.go
package contextgen

import (
	"log/slog"
	"sort"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Section is a selected file together with its decoded content.
type Section struct {
	Entry   FileEntry
	Content string
}

// SkippedFile records a selected file that could not be read or decoded.
type SkippedFile struct {
	RelPath string
	Err     error
}

// ExtensionStat aggregates the files sharing one extension.
type ExtensionStat struct {
	Extension string
	Count     int
	Chars     int
}

// Stats is the per-run statistics result.
type Stats struct {
	ByExtension map[string]*ExtensionStat
	TotalChars  int
	Skipped     []SkippedFile
}

// ReadAll reads every entry once. Entries that fail to read or decode are
// logged and returned as skipped; they never abort the run.
func ReadAll(entries []FileEntry, reader ContentReader) ([]Section, []SkippedFile) {
	sections := make([]Section, 0, len(entries))
	var skipped []SkippedFile
	for _, entry := range entries {
		content, err := reader.Read(entry.AbsPath)
		if err != nil {
			slog.Warn("Skipping unreadable file.", "path", entry.RelPath, "error", err)
			skipped = append(skipped, SkippedFile{RelPath: entry.RelPath, Err: err})
			continue
		}
		sections = append(sections, Section{Entry: entry, Content: content})
	}
	return sections, skipped
}

// Accumulate reads entries through reader and tallies the successful ones.
func Accumulate(entries []FileEntry, reader ContentReader) Stats {
	sections, skipped := ReadAll(entries, reader)
	stats := Tally(sections)
	stats.Skipped = skipped
	return stats
}

// Tally counts files and characters (runes, not bytes) per extension.
func Tally(sections []Section) Stats {
	stats := Stats{ByExtension: make(map[string]*ExtensionStat)}
	for _, s := range sections {
		chars := utf8.RuneCountInString(s.Content)
		st, ok := stats.ByExtension[s.Entry.Ext]
		if !ok {
			st = &ExtensionStat{Extension: s.Entry.Ext}
			stats.ByExtension[s.Entry.Ext] = st
		}
		st.Count++
		st.Chars += chars
		stats.TotalChars += chars
	}
	return stats
}

// Extensions returns the extension keys in sorted order.
func (s Stats) Extensions() []string {
	keys := make([]string, 0, len(s.ByExtension))
	for k := range s.ByExtension {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileCount is the number of files that made it into the document.
func (s Stats) FileCount() int {
	n := 0
	for _, st := range s.ByExtension {
		n += st.Count
	}
	return n
}

// TotalDisplay renders TotalChars with thousands separators, e.g. "12,345".
func (s Stats) TotalDisplay() string {
	return FormatCount(s.TotalChars)
}

// FormatCount renders n with comma thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
