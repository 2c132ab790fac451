// internal/contextgen/exclusion.go
package contextgen

import (
	"fmt"
	"log/slog"
	"strings"
)

// PathInfo holds information about a path being considered for exclusion.
type PathInfo struct {
	AbsPath  string // Absolute path on the filesystem
	RelPath  string // Path relative to the root, using slashes
	BaseName string // Final component of the path
	IsDir    bool
}

// Excluder defines the interface for checking if a path should be excluded.
type Excluder interface {
	IsExcluded(info PathInfo) (excluded bool, reason string, pattern string)
}

// RuleExcluder applies directory-segment and file-name exclusion from a FilterRules value.
type RuleExcluder struct {
	dirPatterns  []string
	filePatterns []string
	skipAbs      map[string]struct{}
}

// NewRuleExcluder builds an excluder for rules. skipAbs lists absolute paths
// that are always excluded regardless of the rules.
func NewRuleExcluder(rules FilterRules, skipAbs ...string) *RuleExcluder {
	e := &RuleExcluder{
		dirPatterns:  rules.ExcludeDirs,
		filePatterns: rules.ExcludeFiles,
		skipAbs:      make(map[string]struct{}, len(skipAbs)),
	}
	for _, p := range skipAbs {
		e.skipAbs[p] = struct{}{}
	}
	return e
}

// IsExcluded implements Excluder.
//
// Any segment of the relative path, the entry's own name included, matching
// an excluded directory pattern excludes the entry. Files are additionally
// checked by bare name against the file patterns.
func (e *RuleExcluder) IsExcluded(info PathInfo) (excluded bool, reason string, pattern string) {
	if _, skip := e.skipAbs[info.AbsPath]; skip {
		return true, "skip path", info.AbsPath
	}

	segments := strings.Split(info.RelPath, "/")
	for i, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		if match, p := MatchAny(seg, e.dirPatterns); match {
			if i == len(segments)-1 {
				return true, "directory name match", p
			}
			return true, fmt.Sprintf("ancestor %s excluded", strings.Join(segments[:i+1], "/")), p
		}
	}

	if !info.IsDir {
		if match, p := MatchAny(info.BaseName, e.filePatterns); match {
			return true, "file pattern match", p
		}
	}

	slog.Debug("Exclusion check: path not excluded", "path", info.RelPath)
	return false, "", ""
}
