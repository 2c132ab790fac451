// internal/contextgen/render_test.go
package contextgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSections_Layout(t *testing.T) {
	sections := []Section{
		{Entry: FileEntry{RelPath: "a.txt", Ext: ".txt"}, Content: "hello"},
		{Entry: FileEntry{RelPath: "src/main.go", Ext: ".go"}, Content: "package main\n"},
		{Entry: FileEntry{RelPath: "Dockerfile", Ext: ""}, Content: "FROM x"},
	}

	doc := RenderSections("root\n└── a.txt\n", sections)

	expected := "## Directory Structure\n\n" +
		"```\nroot\n└── a.txt\n```\n" +
		"\n## File List\n\n" +
		"a.txt\n\n```txt\nhello\n```\n\n" +
		"src/main.go\n\n```go\npackage main\n```\n\n" +
		"Dockerfile\n\n```\nFROM x\n```\n\n"
	assert.Equal(t, expected, doc)
}

func TestRenderSections_EmptyTree(t *testing.T) {
	doc := RenderSections("", nil)
	assert.Equal(t, "## Directory Structure\n\n\n## File List\n\n", doc)

	doc = RenderSections("\n\n", nil)
	assert.Equal(t, "## Directory Structure\n\n\n## File List\n\n", doc)
}

func TestEscapeFences(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "No fence", input: "plain `code`", want: "plain `code`"},
		{name: "Single fence", input: "```go\nx\n```", want: "``````go\nx\n``````"},
		{name: "Four backticks", input: "````", want: "```````"},
		{name: "Six backticks", input: "``````", want: "````````````"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeFences(tc.input))
		})
	}
}

func TestRenderSections_FencedContentCannotCloseBlock(t *testing.T) {
	content := "# Readme\n```bash\nmake\n```\ntrailing"
	doc := RenderSections("", []Section{
		{Entry: FileEntry{RelPath: "README.md", Ext: ".md"}, Content: content},
		{Entry: FileEntry{RelPath: "after.txt", Ext: ".txt"}, Content: "after"},
	})

	assert.Contains(t, doc, "README.md\n\n```````md\n# Readme\n``````bash\nmake\n``````\ntrailing\n```````\n\n")
	assert.Contains(t, doc, "after.txt\n\n```txt\nafter\n```\n\n")

	// Every opening fence in the file list must be closed by an identical line
	// before the next section starts.
	body := doc[strings.Index(doc, "## File List"):]
	var open string
	for _, line := range strings.Split(body, "\n") {
		if open == "" {
			if strings.HasPrefix(line, "```") {
				open = strings.TrimRight(line, "abcdefghijklmnopqrstuvwxyz")
			}
			continue
		}
		if strings.HasPrefix(line, "`") && strings.Trim(line, "`") == "" && len(line) >= len(open) {
			assert.Equal(t, open, line, "block closed by a different fence")
			open = ""
		}
	}
	assert.Empty(t, open, "unterminated fence")
}

func TestRender_SkipsUnreadableFiles(t *testing.T) {
	entries := []FileEntry{
		{AbsPath: "/r/good.py", RelPath: "good.py", Ext: ".py"},
		{AbsPath: "/r/bad.py", RelPath: "bad.py", Ext: ".py"},
	}
	reader := ReaderFunc(func(path string) (string, error) {
		if strings.HasSuffix(path, "bad.py") {
			return "", ErrDecode
		}
		return "x = 1", nil
	})

	doc := Render("", entries, reader)
	assert.Contains(t, doc, "good.py\n\n```py\nx = 1\n```")
	assert.NotContains(t, doc, "bad.py")
}
