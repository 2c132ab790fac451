// cmd/contextgen/summary_test.go
package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noricha-vr/ContextGenerator/internal/contextgen"
	"github.com/noricha-vr/ContextGenerator/internal/preset"
)

func disableColor(t *testing.T) {
	t.Helper()
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestPrintSummary(t *testing.T) {
	disableColor(t)
	res := &contextgen.Result{
		OutputPath: "/out/proj.md",
		Document:   "0123456789",
		Stats: contextgen.Stats{
			ByExtension: map[string]*contextgen.ExtensionStat{
				".py": {Extension: ".py", Count: 2, Chars: 12345},
				"":    {Extension: "", Count: 1, Chars: 6},
			},
			TotalChars: 12351,
			Skipped: []contextgen.SkippedFile{
				{RelPath: "bin.dat", Err: errors.New("not valid UTF-8")},
			},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, res)

	expected := "\n--- Summary ---\n" +
		"Output: /out/proj.md (10 B)\n" +
		"Extension       Files     Characters\n" +
		"(none)              1              6\n" +
		".py                 2         12,345\n" +
		"Total files: 3\n" +
		"Total characters: 12,351\n" +
		"\nSkipped files (1):\n" +
		"- bin.dat: not valid UTF-8\n" +
		"---------------\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintSummary_NoFiles(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	printSummary(&buf, &contextgen.Result{OutputPath: "/out/x.md"})

	out := buf.String()
	assert.Contains(t, out, "No files included in the output.")
	assert.Contains(t, out, "Total files: 0\n")
	assert.Contains(t, out, "Total characters: 0\n")
	assert.NotContains(t, out, "Skipped")
}

func TestPrintPreset(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	err := printPreset(&buf, "/p/summary.config.json", &preset.Preset{
		ExcludeDirs:  preset.StringList{"dist"},
		OutputFormat: ".md",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Preset /p/summary.config.json\n")
	assert.Contains(t, out, "    \"exclude_dirs\": [\n        \"dist\"\n    ],")
	assert.Contains(t, out, "\"target_files\": null")
}
