// dev_process_utils/increment_version.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	pflag "github.com/spf13/pflag"
)

// Matches: const Version = "major.minor.patch" (double or single quotes), keeping
// anything after the closing quote such as a trailing comment.
var versionLine = regexp.MustCompile(`^(const Version\s*=\s*['"]\d+\.\d+\.)(\d+)(['"].*)$`)

var errVersionNotFound = errors.New("version constant not found")

// bumpPatch increments the patch component of the first Version constant in content.
func bumpPatch(content string) (string, string, error) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		matches := versionLine.FindStringSubmatch(line)
		if len(matches) != 4 {
			continue
		}
		patch, err := strconv.Atoi(matches[2])
		if err != nil {
			return "", "", fmt.Errorf("invalid patch number %q: %w", matches[2], err)
		}
		lines[i] = fmt.Sprintf("%s%d%s", matches[1], patch+1, matches[3])
		return strings.Join(lines, "\n"), lines[i], nil
	}
	return "", "", errVersionNotFound
}

func updateVersionInFile(versionFile string) error {
	content, err := os.ReadFile(versionFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", versionFile, err)
	}
	updated, line, err := bumpPatch(string(content))
	if err != nil {
		return fmt.Errorf("%s: %w", versionFile, err)
	}
	if err := os.WriteFile(versionFile, []byte(updated), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", versionFile, err)
	}
	slog.Info("Version updated.", "file", versionFile, "line", line)
	return nil
}

func main() {
	versionFile := pflag.StringP("file", "f", "cmd/contextgen/version.go", "Go file holding the Version constant.")
	pflag.Parse()

	if err := updateVersionInFile(*versionFile); err != nil {
		slog.Error("Version bump failed.", "error", err)
		os.Exit(1)
	}
}
