// internal/contextgen/rules.go
package contextgen

import (
	"slices"
	"strings"
)

// FilterRules decides which files under a root end up in the document.
// A file is included iff it is not excluded and either its extension is in
// IncludeExtensions or its bare name is in TargetFiles.
type FilterRules struct {
	ExcludeDirs       []string // names or globs, matched against every path segment
	ExcludeFiles      []string // globs, matched against the bare file name
	IncludeExtensions []string // each starts with "."
	TargetFiles       []string // exact bare names, independent of extension
}

var (
	defaultExcludeDirs = []string{
		// version control
		".git", ".svn", ".hg",
		// virtualenvs and package managers
		".venv", "venv", "node_modules",
		// python
		"__pycache__", "*.egg-info", ".mypy_cache", ".pytest_cache", ".tox",
		// editors
		".idea", ".vscode", ".vs",
		// build output and caches
		"build", "dist", ".cache", ".coverage",
		// frameworks
		".serverless", ".terraform", ".stack-work", ".next", ".nuxt", ".svelte-kit",
		".DS_Store", "migrations", ".gradle", "locale",
	}

	defaultExcludeFiles = []string{
		"*.pyc", "*.pyo", "__pycache__", ".DS_Store", "Thumbs.db",
		"*.swp", "*.swo", "*~", ".vscode", ".idea",
		"build", "dist", "*.egg-info", "*.log", "*.bak",
		".cache", "venv", "env", ".env", "node_modules",
		".git", ".svn", ".hg", "local_settings.py",
		"*.pem", "*.key", "*.sqlite3", "*.db",
		"*.min.js", "*.min.css", "summary.config.json",
	}

	defaultTargetFiles = []string{
		"README.md", "Dockerfile", "docker-compose.yml", "requirements.txt",
		"package.json", "svelte.config.js", "tsconfig.json", "manifest.json",
	}

	supportedExtensions = []string{
		".md", ".html", ".css", ".txt", ".json", ".yml", ".yaml",
		".py", ".ts", ".js", ".java", ".cpp", ".c", ".h", ".hpp",
		".rb", ".php", ".go", ".rs", ".swift", ".kt", ".scala",
		".sql", ".sh", ".bat", ".ps1", ".xml", ".csv", ".ini",
		".conf", ".toml", ".jsx", ".tsx", ".vue", ".svelte", ".sass", ".scss",
	}
)

// DefaultRules returns a fresh copy of the built-in rule set.
func DefaultRules() FilterRules {
	return FilterRules{
		ExcludeDirs:       slices.Clone(defaultExcludeDirs),
		ExcludeFiles:      slices.Clone(defaultExcludeFiles),
		IncludeExtensions: slices.Clone(supportedExtensions),
		TargetFiles:       slices.Clone(defaultTargetFiles),
	}
}

// SupportedExtensions lists the extensions offered to users by default.
func SupportedExtensions() []string {
	return slices.Clone(supportedExtensions)
}

// TreeExcludePatterns is the pattern list handed to the tree renderer:
// the excluded directory names plus Python byte-code noise.
func (r FilterRules) TreeExcludePatterns() []string {
	patterns := slices.Clone(r.ExcludeDirs)
	return append(patterns, "__pycache__", "*.pyc")
}

func (r FilterRules) includes(name, ext string) bool {
	return slices.Contains(r.IncludeExtensions, ext) || slices.Contains(r.TargetFiles, name)
}

// NormalizeExtensions splits comma-separated entries, trims them and makes
// sure each carries a leading dot. Case is preserved since matching is
// case-sensitive. Duplicates are dropped, first occurrence wins.
func NormalizeExtensions(extList []string) []string {
	processed := make([]string, 0, len(extList))
	for _, ext := range SplitList(extList) {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(processed, ext) {
			processed = append(processed, ext)
		}
	}
	return processed
}

// SplitList flattens comma-separated entries into a trimmed list without blanks.
func SplitList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			cleaned := strings.TrimSpace(part)
			if cleaned == "" {
				continue
			}
			out = append(out, cleaned)
		}
	}
	return out
}
