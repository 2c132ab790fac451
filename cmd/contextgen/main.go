// cmd/contextgen/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/noricha-vr/ContextGenerator/internal/contextgen"
	"github.com/noricha-vr/ContextGenerator/internal/preset"
)

var (
	fv              flagValues
	copyToClipboard bool
	savePreset      bool
	noPreset        bool
	logLevelStr     string
	configFileFlag  string

	appConfig Config
)

var rootCmd = &cobra.Command{
	Use:   "contextgen [directory]",
	Short: "Bundle a project's directory tree and source files into one document.",
	Long: `contextgen walks a project directory, selects files by extension, explicit
target name and exclusion rules, and writes a single Markdown or text document
(directory structure + file contents) ready to paste into an LLM prompt.

Settings are layered: built-in defaults < config file < project preset
(summary.config.json in the root) < flags.`,
	Version:           Version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Inspect or save the per-project preset.",
}

var presetShowCmd = &cobra.Command{
	Use:   "show [directory]",
	Short: "Print the preset stored in a project root.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPresetShow,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save [directory]",
	Short: "Resolve settings from config and flags and store them as the project preset.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPresetSave,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelStr, "loglevel", "info", "Set logging verbosity (debug, info, warn, error).")
	rootCmd.PersistentFlags().StringVarP(&configFileFlag, "config", "c", "", "Path to a custom configuration file (default ~/.config/contextgen/config.toml).")

	addSettingsFlags(rootCmd)
	rootCmd.Flags().BoolVar(&copyToClipboard, "clipboard", false, "Also copy the document to the clipboard.")
	rootCmd.Flags().BoolVar(&savePreset, "save-preset", false, "Store the resolved settings as the project preset after a successful run.")
	rootCmd.Flags().BoolVar(&noPreset, "no-preset", false, "Ignore the project preset.")

	addSettingsFlags(presetSaveCmd)

	presetCmd.AddCommand(presetShowCmd, presetSaveCmd)
	rootCmd.AddCommand(presetCmd)
}

func addSettingsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&fv.directory, "directory", "d", ".", "Target directory to scan (use this OR a positional argument).")
	f.StringSliceVarP(&fv.extensions, "extensions", "e", nil, "Comma-separated extensions to include (replaces config/preset).")
	f.StringSliceVarP(&fv.excludeDirs, "exclude-dirs", "x", nil, "Comma-separated directory names excluded at any depth; globs such as '*.egg-info' also match (replaces config/preset).")
	f.StringSliceVar(&fv.excludeFiles, "exclude-files", nil, "Comma-separated file name globs to exclude (adds to built-ins).")
	f.StringSliceVarP(&fv.targets, "targets", "t", nil, "Comma-separated file names always included (replaces config/preset).")
	f.StringVarP(&fv.outputDir, "output-dir", "o", "", "Existing directory the document is written to.")
	f.StringVarP(&fv.outputName, "output-name", "n", "", "Output file name (default <root name><format>).")
	f.StringVarP(&fv.format, "format", "f", ".md", "Output format: .md or .txt.")
	f.StringVar(&fv.tree, "tree", "exec", "Directory structure renderer: exec, builtin or none.")
	f.IntVar(&fv.treeDepth, "tree-depth", contextgen.DefaultTreeDepth, "Directory structure depth.")
	f.BoolVar(&fv.gitignore, "gitignore", false, "Also honor .gitignore and .ignore files.")
}

// setup configures logging and loads the config file before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q, defaulting to 'info'.\n", logLevelStr)
		logLevel = slog.LevelInfo
	}
	logOpts := &slog.HandlerOptions{Level: logLevel, AddSource: logLevel <= slog.LevelDebug}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, logOpts)))

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	cfg, err := loadConfig(configFileFlag)
	if err != nil {
		if cmd.Flags().Changed("config") {
			return fmt.Errorf("could not load specified configuration file '%s': %w", configFileFlag, err)
		}
		slog.Warn("Proceeding with default settings due to config load issue.", "error", err)
	}
	appConfig = cfg
	return nil
}

// targetDirectory picks the positional argument or -d, refusing both at once.
func targetDirectory(cmd *cobra.Command, args []string) (string, error) {
	dir := fv.directory
	if len(args) == 1 {
		if cmd.Flags().Changed("directory") {
			return "", fmt.Errorf("cannot mix positional argument '%s' with flag '--directory'", args[0])
		}
		dir = args[0]
	}
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid target directory path '%s': %w", dir, err)
	}
	return abs, nil
}

// loadPreset returns the project preset, or nil when absent or unreadable.
// A broken preset is reported and the run continues without it.
func loadPreset(root string) *preset.Preset {
	p, err := preset.NewStore().Load(root)
	if err != nil {
		slog.Error("Failed to load preset, continuing without it.", "root", root, "error", err)
		return nil
	}
	return p
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root, err := targetDirectory(cmd, args)
	if err != nil {
		return err
	}

	var p *preset.Preset
	if !noPreset {
		p = loadPreset(root)
	}
	settings, err := resolveSettings(root, appConfig, p, cmd.Flags(), fv)
	if err != nil {
		return err
	}

	tree, err := contextgen.NewTreeRenderer(settings.TreeKind, settings.TreeDepth)
	if err != nil {
		return err
	}

	res, err := contextgen.Generate(contextgen.Options{
		Root:         settings.Root,
		Rules:        settings.Rules,
		OutputDir:    settings.OutputDir,
		OutputName:   settings.OutputName,
		Tree:         tree,
		UseGitignore: settings.UseGitignore,
	})
	if err != nil {
		if errors.Is(err, contextgen.ErrOutputDirNotFound) {
			slog.Error("Output directory does not exist; create it or pass --output-dir.", "dir", settings.OutputDir)
		}
		return err
	}

	if copyToClipboard {
		copyDocument(res.Document, cmd.ErrOrStderr())
	}

	if savePreset {
		if err := preset.NewStore().Save(root, settings.toPreset()); err != nil {
			return err
		}
	}

	printSummary(cmd.OutOrStdout(), res)
	return nil
}

func copyDocument(doc string, w io.Writer) {
	if err := clipboard.WriteAll(doc); err != nil {
		slog.Warn("Failed to copy document to clipboard.", "error", err)
		return
	}
	fmt.Fprintln(w, "Document copied to clipboard.")
}

func runPresetShow(cmd *cobra.Command, args []string) error {
	root, err := targetDirectory(cmd, args)
	if err != nil {
		return err
	}
	store := preset.NewStore()
	p, err := store.Load(root)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "No preset at %s\n", store.Path(root))
		return nil
	}
	return printPreset(cmd.OutOrStdout(), store.Path(root), p)
}

func runPresetSave(cmd *cobra.Command, args []string) error {
	root, err := targetDirectory(cmd, args)
	if err != nil {
		return err
	}
	store := preset.NewStore()
	// Start from the existing preset so unset flags keep their stored values.
	settings, err := resolveSettings(root, appConfig, loadPreset(root), cmd.Flags(), fv)
	if err != nil {
		return err
	}
	if err := store.Save(root, settings.toPreset()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preset saved to %s\n", store.Path(root))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
