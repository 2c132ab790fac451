// cmd/contextgen/settings.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	pflag "github.com/spf13/pflag"

	"github.com/noricha-vr/ContextGenerator/internal/contextgen"
	"github.com/noricha-vr/ContextGenerator/internal/preset"
)

// flagValues mirrors the generate flags.
type flagValues struct {
	directory    string
	extensions   []string
	excludeDirs  []string
	excludeFiles []string
	targets      []string
	outputDir    string
	outputName   string
	format       string
	tree         string
	treeDepth    int
	gitignore    bool
}

// runSettings is the fully resolved input of one run.
type runSettings struct {
	Root         string
	Rules        contextgen.FilterRules
	OutputDir    string
	OutputName   string
	OutputFormat string
	TreeKind     string
	TreeDepth    int
	UseGitignore bool
}

// resolveSettings layers built-in defaults < config file < preset < flags.
// Only flags the user actually set (flags.Changed) override lower layers.
func resolveSettings(root string, cfg Config, p *preset.Preset, flags *pflag.FlagSet, fv flagValues) (runSettings, error) {
	s := runSettings{
		Root: root,
		Rules: contextgen.FilterRules{
			ExcludeDirs:       cfg.ExcludeDirs,
			ExcludeFiles:      append(contextgen.DefaultRules().ExcludeFiles, cfg.ExcludeFiles...),
			IncludeExtensions: cfg.IncludeExtensions,
			TargetFiles:       cfg.TargetFiles,
		},
		OutputDir:    *cfg.OutputDir,
		OutputFormat: *cfg.OutputFormat,
		TreeKind:     *cfg.TreeRenderer,
		TreeDepth:    *cfg.TreeDepth,
		UseGitignore: *cfg.UseGitignore,
	}

	if p != nil {
		slog.Debug("Applying preset values.", "root", root)
		if p.ExcludeDirs != nil {
			s.Rules.ExcludeDirs = []string(p.ExcludeDirs)
		}
		if p.TargetFiles != nil {
			s.Rules.TargetFiles = []string(p.TargetFiles)
		}
		if p.IncludeExtensions != nil {
			s.Rules.IncludeExtensions = p.IncludeExtensions
		}
		if p.OutputDir != "" {
			s.OutputDir = p.OutputDir
		}
		if p.OutputFormat != "" {
			s.OutputFormat = p.OutputFormat
		}
	}

	if flags.Changed("extensions") {
		s.Rules.IncludeExtensions = contextgen.NormalizeExtensions(fv.extensions)
	}
	if flags.Changed("exclude-dirs") {
		s.Rules.ExcludeDirs = contextgen.SplitList(fv.excludeDirs)
	}
	if flags.Changed("exclude-files") {
		s.Rules.ExcludeFiles = append(s.Rules.ExcludeFiles, contextgen.SplitList(fv.excludeFiles)...)
	}
	if flags.Changed("targets") {
		s.Rules.TargetFiles = contextgen.SplitList(fv.targets)
	}
	if flags.Changed("output-dir") {
		s.OutputDir = fv.outputDir
	}
	if flags.Changed("format") {
		s.OutputFormat = fv.format
	}
	if flags.Changed("tree") {
		s.TreeKind = fv.tree
	}
	if flags.Changed("tree-depth") {
		s.TreeDepth = fv.treeDepth
	}
	if flags.Changed("gitignore") {
		s.UseGitignore = fv.gitignore
	}

	switch s.OutputFormat {
	case ".md", ".txt":
	case "md", "txt":
		s.OutputFormat = "." + s.OutputFormat
	default:
		return s, fmt.Errorf("unsupported output format %q (want .md or .txt)", s.OutputFormat)
	}

	s.OutputDir = expandHome(s.OutputDir)
	if flags.Changed("output-name") && fv.outputName != "" {
		s.OutputName = fv.outputName
	} else {
		s.OutputName = defaultOutputName(root, s.OutputFormat)
	}

	slog.Debug("Resolved settings.",
		"root", s.Root,
		"include_extensions", s.Rules.IncludeExtensions,
		"exclude_dirs", s.Rules.ExcludeDirs,
		"exclude_files", s.Rules.ExcludeFiles,
		"target_files", s.Rules.TargetFiles,
		"output", filepath.Join(s.OutputDir, s.OutputName),
		"tree", s.TreeKind,
		"use_gitignore", s.UseGitignore,
	)
	return s, nil
}

// toPreset captures the settings that are persisted per project.
func (s runSettings) toPreset() preset.Preset {
	return preset.Preset{
		ExcludeDirs:       preset.StringList(s.Rules.ExcludeDirs),
		OutputDir:         s.OutputDir,
		TargetFiles:       preset.StringList(s.Rules.TargetFiles),
		IncludeExtensions: s.Rules.IncludeExtensions,
		OutputFormat:      s.OutputFormat,
	}
}

// defaultOutputName is <root base name><format>, or summary<format> when the
// root has no usable base name (filesystem root).
func defaultOutputName(root, format string) string {
	base := filepath.Base(root)
	if base == string(filepath.Separator) || base == "." || base == "" {
		base = "summary"
	}
	return base + format
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
