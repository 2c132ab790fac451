// internal/contextgen/render.go
package contextgen

import (
	"strings"
)

const (
	fence        = "```"
	escapedFence = "``````"
)

// EscapeFences replaces every literal ``` in content with ``````.
// The transform is one-way; the original bytes are not recoverable from the
// document.
func EscapeFences(content string) string {
	return strings.ReplaceAll(content, fence, escapedFence)
}

// fenceFor returns a backtick fence that body cannot close: three backticks,
// or one more than the longest backtick run in body when that run is three or
// longer.
func fenceFor(body string) string {
	longest, run := 0, 0
	for i := 0; i < len(body); i++ {
		if body[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < len(fence) {
		return fence
	}
	return strings.Repeat("`", longest+1)
}

func writeFenced(b *strings.Builder, info, body string) {
	f := fenceFor(body)
	b.WriteString(f)
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(f)
	b.WriteString("\n")
}

// Render reads entries through reader and renders the document. Entries that
// fail to read are left out entirely.
func Render(treeText string, entries []FileEntry, reader ContentReader) string {
	sections, _ := ReadAll(entries, reader)
	return RenderSections(treeText, sections)
}

// RenderSections renders the directory structure followed by one fenced
// section per file, in the given order.
func RenderSections(treeText string, sections []Section) string {
	var b strings.Builder

	b.WriteString("## Directory Structure\n\n")
	if tree := strings.TrimRight(treeText, "\n"); tree != "" {
		writeFenced(&b, "", tree)
	}

	b.WriteString("\n## File List\n\n")
	for _, s := range sections {
		b.WriteString(s.Entry.RelPath)
		b.WriteString("\n\n")
		writeFenced(&b, strings.TrimPrefix(s.Entry.Ext, "."), EscapeFences(s.Content))
		b.WriteString("\n")
	}
	return b.String()
}
