// internal/contextgen/discover.go
package contextgen

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gocodewalker "github.com/boyter/gocodewalker"
)

// FileEntry is one file selected for the document.
type FileEntry struct {
	AbsPath string
	RelPath string // relative to the root, slash separated
	Ext     string // from the last '.' of the name, dot included; "" if none
}

type discoverOptions struct {
	useGitignore bool
	skipPaths    []string
}

// DiscoverOption tweaks Discover.
type DiscoverOption func(*discoverOptions)

// WithGitignore makes discovery honor .gitignore and .ignore files on top of the rules.
func WithGitignore(enabled bool) DiscoverOption {
	return func(o *discoverOptions) { o.useGitignore = enabled }
}

// WithSkipPaths drops the given absolute paths from the result.
func WithSkipPaths(paths ...string) DiscoverOption {
	return func(o *discoverOptions) { o.skipPaths = append(o.skipPaths, paths...) }
}

// Discover walks root and returns the files selected by rules in
// directory-lexical depth-first order. The order is stable for an unchanged
// file set.
func Discover(root string, rules FilterRules, opts ...DiscoverOption) ([]FileEntry, error) {
	var o discoverOptions
	for _, opt := range opts {
		opt(&o)
	}

	absRoot, err := checkDir(root, ErrRootNotFound)
	if err != nil {
		return nil, err
	}

	excluder := NewRuleExcluder(rules, o.skipPaths...)
	slog.Info("Starting file scan.", "root", absRoot, "useGitignore", o.useGitignore)

	var entries []FileEntry
	if o.useGitignore {
		entries, err = discoverWithGitignore(absRoot, rules, excluder)
	} else {
		entries, err = discoverWalk(absRoot, rules, excluder)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("File scan completed.", "selected", len(entries))
	return entries, nil
}

func discoverWalk(root string, rules FilterRules, excluder Excluder) ([]FileEntry, error) {
	entries := make([]FileEntry, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("Error accessing path, skipping.", "path", path, "error", err)
			return nil
		}
		if path == root {
			return nil
		}

		info := pathInfo(root, path, d.IsDir())
		if excluded, reason, pattern := excluder.IsExcluded(info); excluded {
			if info.IsDir {
				slog.Debug("Excluding directory and its contents.", "path", info.RelPath, "reason", reason, "pattern", pattern)
				return fs.SkipDir
			}
			slog.Debug("Excluding file.", "path", info.RelPath, "reason", reason, "pattern", pattern)
			return nil
		}
		if info.IsDir {
			return nil
		}

		if entry, ok := selectFile(rules, info); ok {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return entries, nil
}

func discoverWithGitignore(root string, rules FilterRules, excluder Excluder) ([]FileEntry, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)
	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.IgnoreGitIgnore = false
	fileWalker.IgnoreIgnoreFile = false
	// Dotfiles are subject to the rules and ignore files only.
	fileWalker.IncludeHidden = true

	var walkErr error
	processingDone := make(chan struct{})

	go func() {
		defer close(processingDone)
		fileWalker.SetErrorHandler(walkErrorHandler(root))
		walkErr = fileWalker.Start()
	}()

	entries := make([]FileEntry, 0)
	for f := range fileListQueue {
		info := pathInfo(root, f.Location, false)
		if excluded, reason, pattern := excluder.IsExcluded(info); excluded {
			slog.Debug("Excluding file.", "path", info.RelPath, "reason", reason, "pattern", pattern)
			continue
		}
		if entry, ok := selectFile(rules, info); ok {
			entries = append(entries, entry)
		}
	}
	<-processingDone

	if walkErr != nil {
		return nil, fmt.Errorf("file walk operation failed for %s: %w", root, walkErr)
	}

	SortEntries(entries)
	return entries, nil
}

// walkErrorHandler logs errors on individual entries and keeps the walk going.
func walkErrorHandler(root string) func(error) bool {
	return func(e error) bool {
		slog.Warn("Error accessing path, skipping.", "root", root, "error", e)
		return true
	}
}

// SortEntries orders entries the way a lexical depth-first walk visits them:
// segment by segment, so "a/b.txt" sorts before "a.txt".
func SortEntries(entries []FileEntry) {
	slices.SortFunc(entries, func(a, b FileEntry) int {
		return slices.Compare(strings.Split(a.RelPath, "/"), strings.Split(b.RelPath, "/"))
	})
}

func selectFile(rules FilterRules, info PathInfo) (FileEntry, bool) {
	ext := filepath.Ext(info.BaseName)
	if !rules.includes(info.BaseName, ext) {
		return FileEntry{}, false
	}
	slog.Debug("Selected file.", "path", info.RelPath, "ext", ext)
	return FileEntry{AbsPath: info.AbsPath, RelPath: info.RelPath, Ext: ext}, true
}

func pathInfo(root, path string, isDir bool) PathInfo {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return PathInfo{
		AbsPath:  path,
		RelPath:  filepath.ToSlash(rel),
		BaseName: filepath.Base(path),
		IsDir:    isDir,
	}
}

// checkDir resolves path to an absolute directory. notFound is wrapped when
// the path does not exist.
func checkDir(path string, notFound error) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", notFound, abs)
		}
		return "", fmt.Errorf("accessing %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return abs, nil
}
