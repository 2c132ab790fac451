// cmd/contextgen/config.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/noricha-vr/ContextGenerator/internal/contextgen"
)

// Config holds the user-level defaults read from config.toml.
type Config struct {
	IncludeExtensions []string `toml:"include_extensions"`
	ExcludeDirs       []string `toml:"exclude_dirs"`
	ExcludeFiles      []string `toml:"exclude_files"` // added to the built-in file patterns
	TargetFiles       []string `toml:"target_files"`
	OutputDir         *string  `toml:"output_dir"`
	OutputFormat      *string  `toml:"output_format"`
	TreeRenderer      *string  `toml:"tree_renderer"`
	TreeDepth         *int     `toml:"tree_depth"`
	UseGitignore      *bool    `toml:"use_gitignore"`
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

// defaultConfig returns the built-in settings. Called fresh each time so no
// caller can mutate shared slices.
func defaultConfig() Config {
	rules := contextgen.DefaultRules()
	return Config{
		IncludeExtensions: rules.IncludeExtensions,
		ExcludeDirs:       rules.ExcludeDirs,
		ExcludeFiles:      []string{},
		TargetFiles:       rules.TargetFiles,
		OutputDir:         strPtr(defaultOutputDir()),
		OutputFormat:      strPtr(".md"),
		TreeRenderer:      strPtr("exec"),
		TreeDepth:         intPtr(contextgen.DefaultTreeDepth),
		UseGitignore:      boolPtr(false),
	}
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Desktop")
}

// defaultConfigPath is ~/.config/contextgen/config.toml.
func defaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "contextgen", "config.toml"), nil
}

// loadConfig finds and loads the configuration. A custom path that does not
// exist is an error; a missing default file is not.
func loadConfig(customConfigPath string) (Config, error) {
	isCustomPath := customConfigPath != ""
	var configFile string
	if isCustomPath {
		abs, err := filepath.Abs(customConfigPath)
		if err != nil {
			return defaultConfig(), fmt.Errorf("invalid custom config path '%s': %w", customConfigPath, err)
		}
		configFile = abs
		slog.Debug("Attempting to load configuration from custom path.", "path", configFile)
	} else {
		p, err := defaultConfigPath()
		if err != nil {
			slog.Warn("Could not determine user home directory. Using default settings only.", "error", err)
			return defaultConfig(), nil
		}
		configFile = p
		slog.Debug("Attempting to load configuration from default path.", "path", configFile)
	}
	return loadConfigFile(configFile, isCustomPath)
}

func loadConfigFile(configFile string, required bool) (Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if required {
				slog.Error("Specified configuration file not found.", "path", configFile)
				return defaultConfig(), fmt.Errorf("specified configuration file '%s' not found", configFile)
			}
			slog.Info("No default config file found, using default settings.", "path", configFile)
			return defaultConfig(), nil
		}
		slog.Error("Error reading config file.", "path", configFile, "error", err)
		return defaultConfig(), fmt.Errorf("error reading config file '%s': %w", configFile, err)
	}

	if len(content) == 0 {
		slog.Info("Configuration file is empty, using default settings.", "path", configFile)
		return defaultConfig(), nil
	}

	slog.Info("Loading configuration.", "path", configFile)
	loadedCfg := defaultConfig()
	meta, err := toml.Decode(string(content), &loadedCfg)
	if err != nil {
		slog.Error("Error decoding TOML config file, using default settings.", "path", configFile, "error", err)
		return defaultConfig(), fmt.Errorf("error decoding TOML from '%s': %w", configFile, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		slog.Warn("Unrecognized keys found in config file.", "path", configFile, "keys", undecoded)
	}

	loadedCfg.IncludeExtensions = contextgen.NormalizeExtensions(loadedCfg.IncludeExtensions)

	slog.Debug("Configuration loaded successfully.",
		"source", configFile,
		"include_extensions", loadedCfg.IncludeExtensions,
		"exclude_dirs", loadedCfg.ExcludeDirs,
		"exclude_files", loadedCfg.ExcludeFiles,
		"target_files", loadedCfg.TargetFiles,
		"output_dir", *loadedCfg.OutputDir,
		"tree_renderer", *loadedCfg.TreeRenderer,
		"use_gitignore", *loadedCfg.UseGitignore,
	)
	return loadedCfg, nil
}
