// internal/contextgen/generate.go
package contextgen

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/noricha-vr/ContextGenerator/internal/fsutil"
)

// Options are the inputs of one summary run.
type Options struct {
	Root         string
	Rules        FilterRules
	OutputDir    string
	OutputName   string
	Tree         TreeRenderer  // nil renders an empty structure section
	Reader       ContentReader // nil means FileReader
	UseGitignore bool
}

// Result is what a run hands back to the front end.
type Result struct {
	Stats      Stats
	OutputPath string
	Files      []string // relative paths rendered into the document, in order
	Document   string
}

// Generate discovers files under opts.Root, renders the document and writes
// it to OutputDir/OutputName, replacing any existing file. Configuration
// problems (missing root or output directory) fail before anything is written.
func Generate(opts Options) (*Result, error) {
	if opts.OutputName == "" {
		return nil, errors.New("output file name is empty")
	}
	if filepath.Base(opts.OutputName) != opts.OutputName {
		return nil, fmt.Errorf("output file name %q must not contain a directory", opts.OutputName)
	}

	root, err := checkDir(opts.Root, ErrRootNotFound)
	if err != nil {
		return nil, err
	}
	outputDir, err := checkDir(opts.OutputDir, ErrOutputDirNotFound)
	if err != nil {
		return nil, err
	}
	outputPath := filepath.Join(outputDir, opts.OutputName)

	reader := opts.Reader
	if reader == nil {
		reader = FileReader{}
	}

	treeText := RenderTreeBestEffort(opts.Tree, root, opts.Rules.TreeExcludePatterns())

	entries, err := Discover(root, opts.Rules,
		WithGitignore(opts.UseGitignore),
		WithSkipPaths(outputPath),
	)
	if err != nil {
		return nil, err
	}

	sections, skipped := ReadAll(entries, reader)
	stats := Tally(sections)
	stats.Skipped = skipped

	doc := RenderSections(treeText, sections)
	if err := fsutil.WriteFileAtomic(outputPath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	files := make([]string, len(sections))
	for i, s := range sections {
		files[i] = s.Entry.RelPath
	}
	slog.Info("Summary written.", "path", outputPath, "files", len(files), "skipped", len(skipped), "chars", stats.TotalChars)

	return &Result{Stats: stats, OutputPath: outputPath, Files: files, Document: doc}, nil
}
