// internal/contextgen/helpers_test.go
package contextgen

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDir creates structure under a fresh temp dir.
// Keys ending in "/" are directories; everything else is a file with the given content.
func setupTestDir(t *testing.T, structure map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()
	paths := make([]string, 0, len(structure))
	for p := range structure {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, relPath := range paths {
		absPath := filepath.Join(tempDir, filepath.FromSlash(relPath))
		if strings.HasSuffix(relPath, "/") {
			require.NoError(t, os.MkdirAll(absPath, 0755), "Failed to create directory: %s", absPath)
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0755))
		err := os.WriteFile(absPath, []byte(structure[relPath]), 0644)
		require.NoError(t, err, "Failed to write file: %s", absPath)
	}
	return tempDir
}

// setupTestLogger routes the default logger into a buffer for the test's duration.
func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var logBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &logBuf
}

func relPaths(entries []FileEntry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.RelPath
	}
	return paths
}
