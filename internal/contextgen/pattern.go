// internal/contextgen/pattern.go
package contextgen

import (
	"github.com/danwakefield/fnmatch"
)

// Match reports whether name matches the shell-style glob pattern.
// '*' matches any run of characters (including none), '?' exactly one,
// everything else literally. Matching is case-sensitive and is meant for
// bare file or directory names, never full paths.
func Match(name, pattern string) bool {
	if pattern == "" {
		return name == ""
	}
	return fnmatch.Match(pattern, name, 0)
}

// MatchAny returns true and the first matching pattern if name matches any of patterns.
func MatchAny(name string, patterns []string) (bool, string) {
	for _, p := range patterns {
		if Match(name, p) {
			return true, p
		}
	}
	return false, ""
}
