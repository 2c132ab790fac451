// dev_process_utils/increment_version_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpPatch(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Double quotes with comment",
			input:    "package main\n\nconst Version = \"0.1.9\" // major.minor.patch\n",
			expected: "package main\n\nconst Version = \"0.1.10\" // major.minor.patch\n",
		},
		{
			name:     "Single quotes",
			input:    "const Version = '1.2.3'",
			expected: "const Version = '1.2.4'",
		},
		{
			name:     "Only first constant changes",
			input:    "const Version = \"0.0.1\"\nconst Version = \"0.0.1\"",
			expected: "const Version = \"0.0.2\"\nconst Version = \"0.0.1\"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, _, err := bumpPatch(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestBumpPatch_NotFound(t *testing.T) {
	_, _, err := bumpPatch("package main\n\nvar version = \"dev\"\n")
	assert.ErrorIs(t, err, errVersionNotFound)
}

func TestUpdateVersionInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nconst Version = \"0.1.0\"\n"), 0644))

	require.NoError(t, updateVersionInFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `const Version = "0.1.1"`)
}
