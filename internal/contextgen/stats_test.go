// internal/contextgen/stats_test.go
package contextgen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReader(t *testing.T) {
	root := setupTestDir(t, map[string]string{
		"ok.txt":   "héllo 日本語",
		"bad.txt":  string([]byte{0xff, 0xfe, 0x00, 'a'}),
		"empty.md": "",
	})
	reader := FileReader{}

	content, err := reader.Read(filepath.Join(root, "ok.txt"))
	require.NoError(t, err)
	assert.Equal(t, "héllo 日本語", content)

	content, err = reader.Read(filepath.Join(root, "empty.md"))
	require.NoError(t, err)
	assert.Empty(t, content)

	_, err = reader.Read(filepath.Join(root, "bad.txt"))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = reader.Read(filepath.Join(root, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAccumulate(t *testing.T) {
	root := setupTestDir(t, map[string]string{
		"a.py":        "print(1)",
		"b.py":        "日本語",
		"c.md":        "# hi",
		"Dockerfile":  "FROM x",
		"broken.py":   string([]byte{0xc3, 0x28}),
		"sub/deep.md": "ab",
	})
	rules := FilterRules{IncludeExtensions: []string{".py", ".md"}, TargetFiles: []string{"Dockerfile"}}
	entries, err := Discover(root, rules)
	require.NoError(t, err)

	stats := Accumulate(entries, FileReader{})

	require.Len(t, stats.ByExtension, 3)
	assert.Equal(t, ExtensionStat{Extension: ".py", Count: 2, Chars: 11}, *stats.ByExtension[".py"])
	assert.Equal(t, ExtensionStat{Extension: ".md", Count: 2, Chars: 6}, *stats.ByExtension[".md"])
	assert.Equal(t, ExtensionStat{Extension: "", Count: 1, Chars: 6}, *stats.ByExtension[""])
	assert.Equal(t, 23, stats.TotalChars)
	assert.Equal(t, 5, stats.FileCount())
	assert.Equal(t, []string{"", ".md", ".py"}, stats.Extensions())

	require.Len(t, stats.Skipped, 1)
	assert.Equal(t, "broken.py", stats.Skipped[0].RelPath)
	assert.ErrorIs(t, stats.Skipped[0].Err, ErrDecode)

	sum := 0
	for _, st := range stats.ByExtension {
		sum += st.Chars
	}
	assert.Equal(t, stats.TotalChars, sum)
}

func TestAccumulate_ReaderFailuresNeverAbort(t *testing.T) {
	entries := []FileEntry{
		{AbsPath: "/x/one.go", RelPath: "one.go", Ext: ".go"},
		{AbsPath: "/x/two.go", RelPath: "two.go", Ext: ".go"},
	}
	reader := ReaderFunc(func(path string) (string, error) {
		if path == "/x/one.go" {
			return "", errors.New("permission denied")
		}
		return "package two", nil
	})

	stats := Accumulate(entries, reader)
	assert.Equal(t, 11, stats.TotalChars)
	assert.Equal(t, 1, stats.ByExtension[".go"].Count)
	require.Len(t, stats.Skipped, 1)
	assert.Equal(t, "one.go", stats.Skipped[0].RelPath)
}

func TestFormatCount(t *testing.T) {
	testCases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatCount(tc.in))
	}
	assert.Equal(t, "12,345", Stats{TotalChars: 12345}.TotalDisplay())
}
